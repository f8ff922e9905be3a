package payroll

import (
	"github.com/AIforimpact22/HR-amas/internal/middleware"
	"github.com/AIforimpact22/HR-amas/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/summary",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetSummary,
		)
		payroll.GET("/ledger",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetLedger,
		)
		payroll.GET("/report",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.DownloadReport,
		)
		payroll.POST("/raise",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.RaiseOrCut,
		)
		if redisClient != nil {
			payroll.POST("/finalize",
				middleware.Idempotency(redisClient),
				middleware.RateLimitByUser(0.5, 2),
				middleware.RBACAuthorize(rbacService, "payroll", "approve"),
				handler.Finalize,
			)
		} else {
			payroll.POST("/finalize",
				middleware.RateLimitByUser(0.5, 2),
				middleware.RBACAuthorize(rbacService, "payroll", "approve"),
				handler.Finalize,
			)
		}
	}
}
