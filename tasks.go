package main

import (
	"net/http"

	"nativus/models"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	DueDate    string `json:"due_date"` // YYYY-MM-DD, empty means today
	Title      string `json:"title" binding:"required"`
	CustomerID *uint  `json:"customer_id"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	Note       string `json:"note"`
}

func (r *taskRequest) normalize() string {
	if r.Status == "" {
		r.Status = "Pending"
	}
	if !oneOf(r.Status, models.TaskStatuses) {
		return "invalid status"
	}
	if r.Priority != "" && !oneOf(r.Priority, models.TaskPriorities) {
		return "invalid priority"
	}
	return ""
}

func createTaskHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.normalize(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	dueDate, err := resolveDay(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}
	t := models.Task{
		UserID:     user.ID,
		CustomerID: req.CustomerID,
		DueDate:    dueDate,
		Title:      req.Title,
		Status:     req.Status,
		Priority:   req.Priority,
		Note:       req.Note,
	}
	if err := db.Create(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": t.ID})
}

func listTasksHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Task{}).Where("user_id = ?", user.ID)
	if sf := c.DefaultQuery("status_filter", "all"); sf != "all" {
		q = q.Where("status = ?", sf)
	}
	q = applyDayRange(q, "due_date", c.Query("start_date"), c.Query("end_date"))
	var tasks []models.Task
	if err := q.Order("due_date desc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func updateTaskHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var t models.Task
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&t).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.normalize(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	dueDate, err := resolveDay(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}
	if req.DueDate != "" {
		t.DueDate = dueDate
	}
	t.CustomerID = req.CustomerID
	t.Title = req.Title
	t.Status = req.Status
	t.Priority = req.Priority
	t.Note = req.Note
	if err := db.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func deleteTaskHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var t models.Task
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&t).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err := db.Delete(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
