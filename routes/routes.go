package routes

import (
	"net/http"
	"time"

	"orgflow/handlers"
	"orgflow/middleware"
	"orgflow/models"
	"orgflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEmployeeRoutes registers account endpoints.
func RegisterEmployeeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/employees")
	{
		api.POST("/register", hb.Employee.RegisterHandler)
		api.POST("/login", hb.Employee.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.Employee.GetMeHandler)
		api.PUT("/fcm-token", hb.Employee.UpdateFCMTokenHandler)
		api.POST("/logout", hb.Employee.LogoutHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Notification.ListHandler)
		api.GET("/unread-count", hb.Notification.UnreadCountHandler)
		api.PATCH("/mark-all-read", hb.Notification.MarkAllReadHandler)
		api.PATCH("/:id/read", hb.Notification.MarkReadHandler)
		api.PATCH("/:id/action", hb.Notification.MarkActionedHandler)
	}
}

// RegisterLeaveRoutes registers the leave request workflow endpoints.
func RegisterLeaveRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leaves")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Leave.SubmitHandler)
		api.GET("", hb.Leave.ListMineHandler)
		api.GET("/pending", hb.Leave.ListPendingHandler)
		api.GET("/:id", hb.Leave.GetHandler)
		api.POST("/:id/approve", hb.Leave.ApproveHandler)
		api.POST("/:id/reject", hb.Leave.RejectHandler)
	}
}

// RegisterExpenseRoutes registers the expense claim workflow endpoints.
func RegisterExpenseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/expenses")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Expense.SubmitHandler)
		api.GET("", hb.Expense.ListMineHandler)
		api.GET("/pending", hb.Expense.ListPendingHandler)
		api.GET("/:id", hb.Expense.GetHandler)
		api.POST("/:id/approve", hb.Expense.ApproveHandler)
		api.POST("/:id/reject", hb.Expense.RejectHandler)
	}
}

// RegisterEmailActionRoutes registers the one-click email action endpoint.
// It is public: the token itself is the credential.
func RegisterEmailActionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/email-actions")
	{
		api.GET("/execute/:token", hb.EmailAction.ExecuteHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/employees", hb.Admin.ListEmployeesHandler)
		adminGroup.GET("/pending-approvals", hb.Admin.PendingApprovalsHandler)
		adminGroup.GET("/email-logs", hb.Admin.EmailLogsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterEmployeeRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterLeaveRoutes(r, hb)
	RegisterExpenseRoutes(r, hb)
	RegisterEmailActionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
