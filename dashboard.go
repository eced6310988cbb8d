package main

import (
	"net/http"

	"nativus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type basicStats struct {
	TotalCustomers int64   `json:"total_customers"`
	TotalOrders    int64   `json:"total_orders"`
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	Net            float64 `json:"net"`
	OpenTasks      int64   `json:"open_tasks"`
}

// collectStats computes the headline totals. userID scopes to one operator;
// 0 means all records (used by the metrics scrape).
func collectStats(userID uint) (basicStats, error) {
	var s basicStats
	scoped := func(q *gorm.DB) *gorm.DB {
		if userID != 0 {
			return q.Where("user_id = ?", userID)
		}
		return q
	}
	if err := scoped(db.Model(&models.Customer{})).Count(&s.TotalCustomers).Error; err != nil {
		return s, err
	}
	if err := scoped(db.Model(&models.Order{})).Count(&s.TotalOrders).Error; err != nil {
		return s, err
	}
	if err := scoped(db.Model(&models.Expense{})).Where("type = ?", models.EntryTypeIncome).
		Select("coalesce(sum(amount), 0)").Scan(&s.TotalIncome).Error; err != nil {
		return s, err
	}
	if err := scoped(db.Model(&models.Expense{})).Where("type = ?", models.EntryTypeExpense).
		Select("coalesce(sum(amount), 0)").Scan(&s.TotalExpense).Error; err != nil {
		return s, err
	}
	if err := scoped(db.Model(&models.Task{})).Where("status <> ?", "Done").Count(&s.OpenTasks).Error; err != nil {
		return s, err
	}
	s.Net = s.TotalIncome - s.TotalExpense
	return s, nil
}

type todayStats struct {
	Orders  int64
	Income  float64
	Expense float64
}

// collectTodayStats computes the today-dated order count and entry sums for
// the more detailed metrics view. Scoping follows collectStats.
func collectTodayStats(userID uint) (todayStats, error) {
	var s todayStats
	day := today()
	scoped := func(q *gorm.DB) *gorm.DB {
		if userID != 0 {
			return q.Where("user_id = ?", userID)
		}
		return q
	}
	if err := scoped(db.Model(&models.Order{})).Where("order_date = ?", day).Count(&s.Orders).Error; err != nil {
		return s, err
	}
	if err := scoped(db.Model(&models.Expense{})).Where("type = ? AND entry_date = ?", models.EntryTypeIncome, day).
		Select("coalesce(sum(amount), 0)").Scan(&s.Income).Error; err != nil {
		return s, err
	}
	if err := scoped(db.Model(&models.Expense{})).Where("type = ? AND entry_date = ?", models.EntryTypeExpense, day).
		Select("coalesce(sum(amount), 0)").Scan(&s.Expense).Error; err != nil {
		return s, err
	}
	return s, nil
}

func dashboardHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	stats, err := collectStats(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var recentCustomers []models.Customer
	db.Where("user_id = ?", user.ID).Order("created_date desc").Limit(5).Find(&recentCustomers)
	var recentOrders []models.Order
	db.Where("user_id = ?", user.ID).Order("order_date desc").Limit(5).Find(&recentOrders)
	var recentTasks []models.Task
	db.Where("user_id = ?", user.ID).Order("due_date desc").Limit(5).Find(&recentTasks)
	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recent_customers": recentCustomers,
		"recent_orders":    recentOrders,
		"recent_tasks":     recentTasks,
	})
}
