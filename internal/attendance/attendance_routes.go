package attendance

import (
	"github.com/AIforimpact22/HR-amas/internal/middleware"
	"github.com/AIforimpact22/HR-amas/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/clock-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.ClockIn,
		)
		attendance.POST("/clock-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.ClockOut,
		)
		attendance.GET("/day",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.ReconcileDay,
		)
		attendance.GET("/range",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.ReconcileRange,
		)
	}
}
