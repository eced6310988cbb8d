package main

import (
	"net/http"
	"strings"

	"nativus/models"

	"github.com/gin-gonic/gin"
)

type orderRequest struct {
	OrderNumber       string   `json:"order_number" binding:"required"`
	OrderDate         string   `json:"order_date"` // YYYY-MM-DD, empty means today
	CustomerID        *uint    `json:"customer_id"`
	TotalAmount       *float64 `json:"total_amount" binding:"required"`
	Currency          string   `json:"currency"`
	PaymentStatus     string   `json:"payment_status"`
	FulfillmentStatus string   `json:"fulfillment_status"`
	SalesChannel      string   `json:"sales_channel"`
	Note              string   `json:"note"`
}

func (r *orderRequest) validate() string {
	if *r.TotalAmount < 0 {
		return "total_amount must be non-negative"
	}
	if r.PaymentStatus != "" && !oneOf(r.PaymentStatus, models.PaymentStatuses) {
		return "invalid payment_status"
	}
	if r.FulfillmentStatus != "" && !oneOf(r.FulfillmentStatus, models.FulfillmentStatuses) {
		return "invalid fulfillment_status"
	}
	return ""
}

func createOrderHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	orderDate, err := resolveDay(req.OrderDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_date must be YYYY-MM-DD"})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	o := models.Order{
		UserID:            user.ID,
		CustomerID:        req.CustomerID,
		OrderDate:         orderDate,
		OrderNumber:       req.OrderNumber,
		TotalAmount:       *req.TotalAmount,
		Currency:          currency,
		PaymentStatus:     req.PaymentStatus,
		FulfillmentStatus: req.FulfillmentStatus,
		SalesChannel:      req.SalesChannel,
		Note:              req.Note,
	}
	if err := db.Create(&o).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": o.ID})
}

func listOrdersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Order{}).Where("user_id = ?", user.ID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(order_number) LIKE ? OR lower(sales_channel) LIKE ? OR lower(payment_status) LIKE ?", like, like, like)
	}
	q = applyDayRange(q, "order_date", c.Query("start_date"), c.Query("end_date"))
	var orders []models.Order
	if err := q.Order("order_date desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var totalSales float64
	for _, o := range orders {
		totalSales += o.TotalAmount
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total_sales": totalSales})
}

func updateOrderHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var o models.Order
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&o).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	orderDate, err := resolveDay(req.OrderDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_date must be YYYY-MM-DD"})
		return
	}
	if req.OrderDate != "" {
		o.OrderDate = orderDate
	}
	o.CustomerID = req.CustomerID
	o.OrderNumber = req.OrderNumber
	o.TotalAmount = *req.TotalAmount
	if req.Currency != "" {
		o.Currency = req.Currency
	}
	o.PaymentStatus = req.PaymentStatus
	o.FulfillmentStatus = req.FulfillmentStatus
	o.SalesChannel = req.SalesChannel
	o.Note = req.Note
	if err := db.Save(&o).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func deleteOrderHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var o models.Order
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&o).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err := db.Delete(&o).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}
