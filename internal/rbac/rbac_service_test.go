package rbac_test

import (
	"testing"

	"github.com/AIforimpact22/HR-amas/internal/domain"
	"github.com/AIforimpact22/HR-amas/internal/rbac"
	"github.com/AIforimpact22/HR-amas/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func setupService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := setupService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"hr hires", rbac.RoleHR, "employee", "create", true},
		{"hr adjusts salary", rbac.RoleHR, "salary", "update", true},
		{"hr finalizes payroll", rbac.RoleHR, "payroll", "approve", true},
		{"hr posts adjustments", rbac.RoleHR, "adjustment", "create", true},
		{"hr inherits viewer reads", rbac.RoleHR, "payroll", "read", true},
		{"viewer reads payroll", rbac.RoleViewer, "payroll", "read", true},
		{"viewer reads attendance", rbac.RoleViewer, "attendance", "read", true},
		{"viewer cannot hire", rbac.RoleViewer, "employee", "create", false},
		{"viewer cannot finalize", rbac.RoleViewer, "payroll", "approve", false},
		{"viewer cannot clock punches", rbac.RoleViewer, "attendance", "create", false},
		{"unknown role denied", "intern", "employee", "read", false},
		{"unknown resource denied", rbac.RoleHR, "secrets", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				ActorID:  "actor-1",
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_Enforce_BlankRole(t *testing.T) {
	svc := setupService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		Resource: "employee",
		Action:   "read",
	})

	assert.NoError(t, err)
	assert.False(t, allowed)
}
