package main

import (
	"net/http"
	"strings"

	"nativus/models"

	"github.com/gin-gonic/gin"
)

type customerRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	City              string `json:"city"`
	Country           string `json:"country"`
	ShopifyCustomerID string `json:"shopify_customer_id"`
	Note              string `json:"note"`
	CreatedDate       string `json:"created_date"` // YYYY-MM-DD, empty means today
}

func createCustomerHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	createdDate, err := resolveDay(req.CreatedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "created_date must be YYYY-MM-DD"})
		return
	}
	cust := models.Customer{
		UserID:            user.ID,
		CreatedDate:       createdDate,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		City:              req.City,
		Country:           req.Country,
		ShopifyCustomerID: req.ShopifyCustomerID,
		Note:              req.Note,
	}
	if err := db.Create(&cust).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cust.ID})
}

func listCustomersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Customer{}).Where("user_id = ?", user.ID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ?", like, like, like)
	}
	q = applyDayRange(q, "created_date", c.Query("start_date"), c.Query("end_date"))
	var customers []models.Customer
	if err := q.Order("created_date desc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func updateCustomerHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var cust models.Customer
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&cust).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	createdDate, err := resolveDay(req.CreatedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "created_date must be YYYY-MM-DD"})
		return
	}
	if req.CreatedDate != "" {
		cust.CreatedDate = createdDate
	}
	cust.Name = req.Name
	cust.Email = req.Email
	cust.Phone = req.Phone
	cust.City = req.City
	cust.Country = req.Country
	cust.ShopifyCustomerID = req.ShopifyCustomerID
	cust.Note = req.Note
	if err := db.Save(&cust).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, cust)
}

// deleteCustomerHandler removes a customer. Orders and tasks that referenced
// it keep existing with a nulled customer_id; nothing cascades.
func deleteCustomerHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var cust models.Customer
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&cust).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	if err := db.Model(&models.Order{}).Where("customer_id = ?", cust.ID).Update("customer_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if err := db.Model(&models.Task{}).Where("customer_id = ?", cust.ID).Update("customer_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if err := db.Delete(&cust).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
