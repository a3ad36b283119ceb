package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stat-reports-api/models"
	"stat-reports-api/services"
)

// CreateTemplate creates a report template and seeds one open deadline per
// branch. Multipart form: name, description, periodicity, category,
// fixed_day, report_date (YYYY-MM-DD), file (the blank form, optional).
func CreateTemplate(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	fixedDay, err := strconv.Atoi(c.PostForm("fixed_day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fixed_day"})
		return
	}

	reportDate, err := time.Parse("2006-01-02", c.PostForm("report_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report_date, expected YYYY-MM-DD"})
		return
	}

	input := services.CreateTemplateInput{
		Name:        name,
		Periodicity: models.Periodicity(c.PostForm("periodicity")),
		Category:    models.ReportCategory(c.PostForm("category")),
		FixedDay:    fixedDay,
		ReportDate:  reportDate,
	}
	if description := c.PostForm("description"); description != "" {
		input.Description = &description
	}
	if file, err := c.FormFile("file"); err == nil {
		input.File = file
	}

	template, err := templateService.Create(input)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

func GetTemplates(c *gin.Context) {
	templates, err := templateService.List()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func GetTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	template, err := templateService.GetByID(id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if template == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

func UpdateTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	type updateRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Category    string  `json:"category" binding:"required"`
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := templateService.Update(id, req.Name, req.Description, models.ReportCategory(req.Category))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DownloadTemplateFile streams the template's blank form file.
func DownloadTemplateFile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	template, err := templateService.GetByID(id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if template == nil || template.FilePath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template file not found"})
		return
	}

	data, err := fileStore.Read(template.FilePath)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(template.FilePath)+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func DeleteTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := templateService.Delete(id); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
