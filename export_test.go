package main

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetRows downloads an export and returns the sheet contents, header row
// included.
func sheetRows(t *testing.T, r *gin.Engine, path, token, sheet string) [][]string {
	t.Helper()
	resp := performRequest(r, http.MethodGet, path, nil, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.Equal(t, xlsxContentType, resp.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func createOrder(t *testing.T, r *gin.Engine, token, number, date string, amount float64, payment string) {
	t.Helper()
	body := map[string]any{"order_number": number, "order_date": date, "total_amount": amount, "payment_status": payment}
	resp := performRequest(r, http.MethodPost, "/orders", jsonBody(t, body), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func createExpense(t *testing.T, r *gin.Engine, token, date, typ string, amount float64) {
	t.Helper()
	body := map[string]any{"entry_date": date, "type": typ, "amount": amount}
	resp := performRequest(r, http.MethodPost, "/expenses", jsonBody(t, body), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestOrderExportDateWindow(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	createOrder(t, r, token, "ORD-JAN", "2024-01-05", 50, "Pending")
	createOrder(t, r, token, "ORD-FEB", "2024-02-10", 75, "Paid")

	rows := sheetRows(t, r, "/export/orders?start_date=2024-01-01&end_date=2024-01-31", token, "Orders")
	require.Len(t, rows, 2) // header + one matching order
	assert.Equal(t, "Order Number", rows[0][2])
	assert.Equal(t, "ORD-JAN", rows[1][2])
	assert.Equal(t, "2024-01-05", rows[1][1])
	assert.Equal(t, "50", rows[1][4])
	assert.Equal(t, "Pending", rows[1][6])

	// boundary days are inclusive on both ends
	rows = sheetRows(t, r, "/export/orders?start_date=2024-01-05&end_date=2024-02-10", token, "Orders")
	require.Len(t, rows, 3)
	assert.Equal(t, "ORD-JAN", rows[1][2], "rows are sorted date ascending")
	assert.Equal(t, "ORD-FEB", rows[2][2])
}

func TestExportInvertedRangeIsEmpty(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")
	createOrder(t, r, token, "ORD-1", "2024-01-05", 50, "Pending")

	rows := sheetRows(t, r, "/export/orders?start_date=2024-02-01&end_date=2024-01-01", token, "Orders")
	require.Len(t, rows, 1, "inverted range yields header only, not an error")
}

func TestExportRejectsMalformedDates(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	for _, path := range []string{
		"/export/orders?start_date=01-05-2024",
		"/export/customers?end_date=yesterday",
		"/export/expenses?start_date=2024-13-40",
		"/export/tasks?end_date=20240105",
	} {
		resp := performRequest(r, http.MethodGet, path, nil, token)
		assert.Equalf(t, http.StatusBadRequest, resp.Code, "path %s", path)
	}
}

func TestExpenseExportFilterType(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	createExpense(t, r, token, "2024-03-01", "expense", 10)
	createExpense(t, r, token, "2024-03-02", "expense", 20)
	createExpense(t, r, token, "2024-03-03", "income", 100)

	base := "/export/expenses?start_date=2024-03-01&end_date=2024-03-31"

	rows := sheetRows(t, r, base+"&filter_type=expense", token, "Expenses")
	require.Len(t, rows, 3)
	for _, row := range rows[1:] {
		assert.Equal(t, "expense", row[2])
	}

	rows = sheetRows(t, r, base+"&filter_type=income", token, "Expenses")
	require.Len(t, rows, 2)
	assert.Equal(t, "income", rows[1][2])

	all := sheetRows(t, r, base+"&filter_type=all", token, "Expenses")
	unfiltered := sheetRows(t, r, base, token, "Expenses")
	assert.Len(t, all, 4)
	assert.Equal(t, len(unfiltered), len(all), "filter_type=all matches the unfiltered count")
}

func TestTaskExportStatusFilter(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	for i, status := range []string{"Pending", "Done", "Done"} {
		body := map[string]any{"title": fmt.Sprintf("task-%d", i), "due_date": "2024-04-01", "status": status}
		resp := performRequest(r, http.MethodPost, "/tasks", jsonBody(t, body), token)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	rows := sheetRows(t, r, "/export/tasks?status_filter=Done", token, "Tasks")
	require.Len(t, rows, 3)
	for _, row := range rows[1:] {
		assert.Equal(t, "Done", row[4])
	}

	rows = sheetRows(t, r, "/export/tasks?status_filter=all", token, "Tasks")
	require.Len(t, rows, 4)
}

func TestDeleteRemovesFromExport(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	resp := performRequest(r, http.MethodPost, "/customers", jsonBody(t, map[string]any{"name": "Gone Soon", "created_date": "2024-05-01"}), token)
	require.Equal(t, http.StatusOK, resp.Code)

	rows := sheetRows(t, r, "/export/customers", token, "Customers")
	require.Len(t, rows, 2)

	resp = performRequest(r, http.MethodDelete, "/customers/1", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	rows = sheetRows(t, r, "/export/customers", token, "Customers")
	require.Len(t, rows, 1, "deleted records disappear from exports")
}

func TestCustomerDeleteNullsReferences(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	resp := performRequest(r, http.MethodPost, "/customers", jsonBody(t, map[string]any{"name": "Ref Holder"}), token)
	require.Equal(t, http.StatusOK, resp.Code)
	body := map[string]any{"order_number": "ORD-REF", "order_date": "2024-06-01", "total_amount": 9.5, "customer_id": 1}
	resp = performRequest(r, http.MethodPost, "/orders", jsonBody(t, body), token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(r, http.MethodDelete, "/customers/1", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	// order survives with an empty customer cell
	rows := sheetRows(t, r, "/export/orders", token, "Orders")
	require.Len(t, rows, 2)
	assert.Equal(t, "ORD-REF", rows[1][2])
	if len(rows[1]) > 3 {
		assert.Empty(t, rows[1][3])
	}
}
