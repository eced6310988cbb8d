package main

import (
	"fmt"
	"net/http"
	"time"

	"nativus/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportWindow parses the optional start_date/end_date query params. Unlike
// the list pages, malformed dates here are a hard 400: the caller is asking
// for a precise slice and a silently widened file would be worse than an
// error. An inverted window is allowed and simply matches nothing.
func exportWindow(c *gin.Context) (start, end *time.Time, ok bool) {
	if s := c.Query("start_date"); s != "" {
		t, err := parseDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return nil, nil, false
		}
		start = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := parseDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return nil, nil, false
		}
		end = &t
	}
	return start, end, true
}

func applyWindow(q *gorm.DB, col string, start, end *time.Time) *gorm.DB {
	if start != nil {
		q = q.Where(col+" >= ?", *start)
	}
	if end != nil {
		q = q.Where(col+" <= ?", *end)
	}
	return q
}

// writeWorkbook serializes a header row plus data rows into a one-sheet xlsx
// and sends it as an attachment.
func writeWorkbook(c *gin.Context, sheet, prefix string, header []string, rows [][]interface{}) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	filename := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// customerNames maps customer ids to names for display-only lookups in the
// order and task exports.
func customerNames(userID uint) map[uint]string {
	var customers []models.Customer
	db.Where("user_id = ?", userID).Find(&customers)
	m := make(map[uint]string, len(customers))
	for _, cust := range customers {
		m[cust.ID] = cust.Name
	}
	return m
}

func fmtDay(t time.Time) string {
	return t.Format(dayFormat)
}

func exportCustomersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	start, end, ok := exportWindow(c)
	if !ok {
		return
	}
	var customers []models.Customer
	q := applyWindow(db.Where("user_id = ?", user.ID), "created_date", start, end)
	if err := q.Order("created_date asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	header := []string{"ID", "Created At", "Name", "Email", "Phone", "City", "Country", "Shopify Customer ID", "Note"}
	rows := make([][]interface{}, 0, len(customers))
	for _, cust := range customers {
		rows = append(rows, []interface{}{
			cust.ID, fmtDay(cust.CreatedDate), cust.Name, cust.Email, cust.Phone,
			cust.City, cust.Country, cust.ShopifyCustomerID, cust.Note,
		})
	}
	writeWorkbook(c, "Customers", "customers", header, rows)
}

func exportOrdersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	start, end, ok := exportWindow(c)
	if !ok {
		return
	}
	var orders []models.Order
	q := applyWindow(db.Where("user_id = ?", user.ID), "order_date", start, end)
	if err := q.Order("order_date asc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	names := customerNames(user.ID)
	header := []string{"ID", "Order Date", "Order Number", "Customer", "Total Amount", "Currency", "Payment Status", "Fulfillment Status", "Sales Channel", "Note"}
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		customer := ""
		if o.CustomerID != nil {
			customer = names[*o.CustomerID]
		}
		rows = append(rows, []interface{}{
			o.ID, fmtDay(o.OrderDate), o.OrderNumber, customer, o.TotalAmount,
			o.Currency, o.PaymentStatus, o.FulfillmentStatus, o.SalesChannel, o.Note,
		})
	}
	writeWorkbook(c, "Orders", "orders", header, rows)
}

func exportExpensesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	start, end, ok := exportWindow(c)
	if !ok {
		return
	}
	q := applyWindow(db.Where("user_id = ?", user.ID), "entry_date", start, end)
	if ft := c.DefaultQuery("filter_type", "all"); ft == models.EntryTypeExpense || ft == models.EntryTypeIncome {
		q = q.Where("type = ?", ft)
	}
	var expenses []models.Expense
	if err := q.Order("entry_date asc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	header := []string{"ID", "Date", "Type", "Category", "Description", "Amount"}
	rows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []interface{}{e.ID, fmtDay(e.EntryDate), e.Type, e.Category, e.Description, e.Amount})
	}
	writeWorkbook(c, "Expenses", "expenses", header, rows)
}

func exportTasksHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	start, end, ok := exportWindow(c)
	if !ok {
		return
	}
	q := applyWindow(db.Where("user_id = ?", user.ID), "due_date", start, end)
	if sf := c.DefaultQuery("status_filter", "all"); sf != "all" {
		q = q.Where("status = ?", sf)
	}
	var tasks []models.Task
	if err := q.Order("due_date asc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	names := customerNames(user.ID)
	header := []string{"ID", "Date", "Title", "Customer", "Status", "Priority", "Note"}
	rows := make([][]interface{}, 0, len(tasks))
	for _, t := range tasks {
		customer := ""
		if t.CustomerID != nil {
			customer = names[*t.CustomerID]
		}
		rows = append(rows, []interface{}{t.ID, fmtDay(t.DueDate), t.Title, customer, t.Status, t.Priority, t.Note})
	}
	writeWorkbook(c, "Tasks", "tasks", header, rows)
}
