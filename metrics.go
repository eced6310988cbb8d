package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// metricsRegistry holds the application-specific Prometheus collectors.
	metricsRegistry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nativus",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path"},
	)

	customersTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "customers_total",
		Help: "Total customers on record.",
	})
	ordersTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "orders_total",
		Help: "Total orders on record.",
	})
	incomeTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "income_total",
		Help: "Total recorded income amount.",
	})
	expenseTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "expense_total",
		Help: "Total recorded expense amount.",
	})
	openTasksTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "open_tasks_total",
		Help: "Tasks not yet marked Done.",
	})

	ordersToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "orders_today",
		Help: "Orders dated today.",
	})
	incomeToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "income_today",
		Help: "Income recorded today.",
	})
	expenseToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nativus", Subsystem: "records", Name: "expense_today",
		Help: "Expenses recorded today.",
	})
)

func init() {
	metricsRegistry.MustRegister(
		httpRequests,
		customersTotal,
		ordersTotal,
		incomeTotal,
		expenseTotal,
		openTasksTotal,
		ordersToday,
		incomeToday,
		expenseToday,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// requestMetrics counts requests per method and route, skipping the scrape
// endpoint itself.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" || path == "/metrics" {
			return
		}
		httpRequests.WithLabelValues(c.Request.Method, path).Inc()
	}
}

// metricsHandler refreshes the record gauges from the database and serves the
// exposition. Stat failures are swallowed: metrics must never break a scrape.
func metricsHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		if stats, err := collectStats(0); err == nil {
			customersTotal.Set(float64(stats.TotalCustomers))
			ordersTotal.Set(float64(stats.TotalOrders))
			incomeTotal.Set(stats.TotalIncome)
			expenseTotal.Set(stats.TotalExpense)
			openTasksTotal.Set(float64(stats.OpenTasks))
		}
		if day, err := collectTodayStats(0); err == nil {
			ordersToday.Set(float64(day.Orders))
			incomeToday.Set(day.Income)
			expenseToday.Set(day.Expense)
		}
		h.ServeHTTP(c.Writer, c.Request)
	}
}
