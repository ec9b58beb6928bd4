package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reminders-backend/config"
	"reminders-backend/controllers"
	"reminders-backend/services"
	"reminders-backend/utils"
)

func SetupRouter(cfg *config.Config, users services.UserDirectory) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendAddress},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// The shared secret guards every route, the health check included.
	r.Use(utils.AuthMiddleware(cfg.AuthKey))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	reminderController := controllers.ReminderController{Users: users}
	reminders := r.Group("/reminders")
	{
		reminders.GET("", reminderController.GetReminders)
		reminders.POST("", reminderController.CreateReminder)
		reminders.DELETE("/:reminderId", reminderController.DeleteReminder)
	}

	return r
}
