package schedule

import (
	"github.com/AIforimpact22/HR-amas/internal/middleware"
	"github.com/AIforimpact22/HR-amas/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "schedule", "create"),
			handler.Assign,
		)
		schedules.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "schedule", "update"),
			handler.Update,
		)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:id/schedules",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "schedule", "read"),
			handler.GetByEmployee,
		)
		employees.GET("/:id/shift",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "schedule", "read"),
			handler.Resolve,
		)
	}
}
