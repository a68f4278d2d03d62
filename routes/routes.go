package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"monchai-insurance/config"
	"monchai-insurance/controllers"
	"monchai-insurance/services"
	"monchai-insurance/views"
)

// Deps are the services the routes hand to the controllers.
type Deps struct {
	Customers   *services.CustomerService
	Journal     *services.Journal
	WindowDays  int
	CORSOrigins []string
	Log         *logrus.Logger
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(config.PerformanceLogger(deps.Log))
	r.Use(gin.CustomRecovery(controllers.InternalError))
	r.SetHTMLTemplate(views.Templates(deps.Customers.Location()))

	customerController := &controllers.CustomerController{Customers: deps.Customers, WindowDays: deps.WindowDays, Log: deps.Log}
	dashboardController := &controllers.DashboardController{Customers: deps.Customers, WindowDays: deps.WindowDays}
	reportController := &controllers.ReportController{Customers: deps.Customers, WindowDays: deps.WindowDays, Log: deps.Log}
	reminderController := &controllers.ReminderController{Journal: deps.Journal, Log: deps.Log}

	r.GET("/", dashboardController.Home)
	r.GET("/healthz", controllers.Health)
	r.GET("/journal", reminderController.GetJournal)

	customers := r.Group("/customers")
	{
		customers.GET("/new", customerController.NewCustomer)
		customers.POST("", customerController.CreateCustomer)
		customers.GET("/edit", customerController.EditCustomer)
		customers.POST("/update", customerController.UpdateCustomer)
		customers.GET("/search", customerController.SearchCustomers)
		customers.POST("/delete", customerController.DeleteCustomers)
		customers.GET("/expiring", customerController.ExpiringCustomers)
		customers.GET("/expiring/export", reportController.ExportDue)
	}

	api := r.Group("/api")
	api.Use(cors.New(corsConfig(deps.CORSOrigins)))
	{
		api.GET("/due", reportController.GetDue)
	}

	r.NoRoute(controllers.NotFound)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
