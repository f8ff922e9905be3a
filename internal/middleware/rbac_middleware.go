package middleware

import (
	"net/http"

	"github.com/AIforimpact22/HR-amas/internal/domain"
	"github.com/AIforimpact22/HR-amas/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface so middleware does not import the
// rbac package.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		actorID := c.GetString("employee_id")
		if actorID == "" {
			actorID = c.GetString("user_id_validated")
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			ActorID:  actorID,
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action,
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
