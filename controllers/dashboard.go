package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monchai-insurance/models"
	"monchai-insurance/services"
)

// DashboardController serves the home page and health check.
type DashboardController struct {
	Customers  *services.CustomerService
	WindowDays int
}

type DashboardOverview struct {
	TotalCustomers int `json:"totalCustomers"`
	DueCount       int `json:"dueCount"`
	OverdueCount   int `json:"overdueCount"`
	WindowDays     int `json:"windowDays"`
}

// Overview counts customers and due customers without touching their status.
func (dc *DashboardController) Overview(c *gin.Context) DashboardOverview {
	customers := dc.Customers.Customers(c.Request.Context())
	due := services.SelectDue(customers, dc.WindowDays, dc.Customers.Now())

	overview := DashboardOverview{
		TotalCustomers: len(customers),
		WindowDays:     dc.WindowDays,
	}
	for _, item := range due {
		if item.Status == models.StatusNotRenewing {
			continue
		}
		overview.DueCount++
		if item.MinDays != nil && *item.MinDays < 0 {
			overview.OverdueCount++
		}
	}
	return overview
}

func (dc *DashboardController) Home(c *gin.Context) {
	overview := dc.Overview(c)
	data := page("หน้าหลัก", "home")
	data["TotalCustomers"] = overview.TotalCustomers
	data["DueCount"] = overview.DueCount
	data["OverdueCount"] = overview.OverdueCount
	data["WindowDays"] = overview.WindowDays
	c.HTML(http.StatusOK, "home.html", data)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
