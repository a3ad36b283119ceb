package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPendingDeadlines lists a branch's open obligations with their comment
// ledger, newest entry first.
func GetPendingDeadlines(c *gin.Context) {
	branchID, ok := paramID(c, "branch_id")
	if !ok {
		return
	}

	pending, err := deadlineService.Pending(branchID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// GetOpenDeadlines lists every open deadline joined with template and branch.
func GetOpenDeadlines(c *gin.Context) {
	deadlines, err := deadlineService.OpenDeadlines()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deadlines": deadlines})
}

// DeleteDeadline removes a deadline row and the linked report's stored file.
func DeleteDeadline(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := deadlineService.Delete(id); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deadline deleted"})
}

// GetDeadlineHistory returns the comment ledger for one deadline.
func GetDeadlineHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	history, err := commentService.History(id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// DeleteComment is the administrative escape hatch; the workflow itself never
// removes ledger entries.
func DeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := commentService.Delete(id); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
