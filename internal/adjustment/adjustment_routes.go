package adjustment

import (
	"github.com/AIforimpact22/HR-amas/internal/middleware"
	"github.com/AIforimpact22/HR-amas/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	adjustments := r.Group("/adjustments")
	adjustments.Use(middleware.AuthMiddleware())
	{
		adjustments.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "adjustment", "create"),
			handler.Post,
		)
		adjustments.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "adjustment", "read"),
			handler.List,
		)
	}
}
