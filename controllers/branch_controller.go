package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stat-reports-api/models"
)

func GetBranches(c *gin.Context) {
	branches, err := store.Branches().FindAll()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

func CreateBranch(c *gin.Context) {
	type branchRequest struct {
		Name    string  `json:"name" binding:"required"`
		Address *string `json:"address"`
	}
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	branch := &models.Branch{
		Name:      req.Name,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := store.Branches().Create(branch); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"branch": branch})
}

func GetBranchUsers(c *gin.Context) {
	branchID, ok := paramID(c, "id")
	if !ok {
		return
	}
	users, err := store.Users().FindByBranch(branchID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
