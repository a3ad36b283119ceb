package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stat-reports-api/models"
	"stat-reports-api/services"
)

// UploadReport stores a report file against an open deadline. Multipart form:
// template_id, branch_id, deadline_id, file. The uploader is the
// authenticated user.
func UploadReport(c *gin.Context) {
	templateID, err := strconv.ParseUint(c.PostForm("template_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template_id"})
		return
	}
	branchID, err := strconv.ParseUint(c.PostForm("branch_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
		return
	}
	deadlineID, err := strconv.ParseUint(c.PostForm("deadline_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline_id"})
		return
	}

	uploaderID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	report, err := reportService.Upload(uint(templateID), uint(branchID), uploaderID, file, uint(deadlineID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// AcceptReport closes the review cycle for one period and rolls the
// obligation over to the next.
func AcceptReport(c *gin.Context) {
	deadlineID, ok := paramID(c, "deadline_id")
	if !ok {
		return
	}
	reportID, ok := paramID(c, "report_id")
	if !ok {
		return
	}

	if err := reportService.Accept(deadlineID, reportID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report accepted"})
}

// RequestCorrection sends a draft back to the branch with a reviewer comment.
func RequestCorrection(c *gin.Context) {
	deadlineID, ok := paramID(c, "deadline_id")
	if !ok {
		return
	}
	reportID, ok := paramID(c, "report_id")
	if !ok {
		return
	}

	type correctionRequest struct {
		Comment string `json:"comment" binding:"required"`
	}
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var authorID *uint
	if id, ok := currentUserID(c); ok {
		authorID = &id
	}

	if err := reportService.RequestCorrection(deadlineID, reportID, req.Comment, authorID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Correction requested"})
}

// ReopenReport reverts an accepted report back into the correction cycle.
func ReopenReport(c *gin.Context) {
	reportID, ok := paramID(c, "report_id")
	if !ok {
		return
	}

	report, err := reportService.Reopen(reportID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report or deadline not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// DownloadReport streams the stored report file.
func DownloadReport(c *gin.Context) {
	reportID, ok := paramID(c, "report_id")
	if !ok {
		return
	}

	data, name, err := reportService.File(reportID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func DeleteReport(c *gin.Context) {
	reportID, ok := paramID(c, "report_id")
	if !ok {
		return
	}
	if err := reportService.Delete(reportID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}

// GetArchive lists closed reports filtered by name, template, branch,
// category and a period window derived from the template's periodicity.
func GetArchive(c *gin.Context) {
	query := services.ArchiveQuery{
		Name:       c.Query("name"),
		TemplateID: queryUint(c, "template_id"),
		BranchID:   queryUint(c, "branch_id"),
		Year:       queryInt(c, "year"),
		Month:      queryInt(c, "month"),
		Quarter:    queryInt(c, "quarter"),
		HalfYear:   queryInt(c, "half_year"),
	}
	if raw := c.Query("category"); raw != "" {
		category := models.ReportCategory(raw)
		query.Category = &category
	}

	reports, err := reportService.Archive(query)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
