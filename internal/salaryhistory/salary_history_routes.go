package salaryhistory

import (
	"github.com/AIforimpact22/HR-amas/internal/middleware"
	"github.com/AIforimpact22/HR-amas/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:id/salary-history",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetHistory,
		)
		employees.GET("/:id/salary",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.Resolve,
		)
	}
}
