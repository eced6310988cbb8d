package main

import (
	"net/http"

	"nativus/models"

	"github.com/gin-gonic/gin"
)

type expenseRequest struct {
	EntryDate   string   `json:"entry_date"` // YYYY-MM-DD, empty means today
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount" binding:"required"`
	Type        string   `json:"type"`
}

func (r *expenseRequest) normalize() string {
	if *r.Amount < 0 {
		return "amount must be non-negative"
	}
	if r.Type == "" {
		r.Type = models.EntryTypeExpense
	}
	if r.Type != models.EntryTypeExpense && r.Type != models.EntryTypeIncome {
		return "type must be expense or income"
	}
	if r.Category == "" {
		r.Category = "General"
	}
	return ""
}

func createExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.normalize(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	entryDate, err := resolveDay(req.EntryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry_date must be YYYY-MM-DD"})
		return
	}
	e := models.Expense{
		UserID:      user.ID,
		EntryDate:   entryDate,
		Category:    req.Category,
		Description: req.Description,
		Amount:      *req.Amount,
		Type:        req.Type,
	}
	if err := db.Create(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": e.ID})
}

func listExpensesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Expense{}).Where("user_id = ?", user.ID)
	if ft := c.DefaultQuery("filter_type", "all"); ft == models.EntryTypeExpense || ft == models.EntryTypeIncome {
		q = q.Where("type = ?", ft)
	}
	q = applyDayRange(q, "entry_date", c.Query("start_date"), c.Query("end_date"))
	var expenses []models.Expense
	if err := q.Order("entry_date desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total_amount": total})
}

func updateExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var e models.Expense
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&e).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.normalize(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	entryDate, err := resolveDay(req.EntryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry_date must be YYYY-MM-DD"})
		return
	}
	if req.EntryDate != "" {
		e.EntryDate = entryDate
	}
	e.Category = req.Category
	e.Description = req.Description
	e.Amount = *req.Amount
	e.Type = req.Type
	if err := db.Save(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func deleteExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var e models.Expense
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&e).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err := db.Delete(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}
