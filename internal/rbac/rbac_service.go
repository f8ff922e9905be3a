package rbac

import (
	"github.com/AIforimpact22/HR-amas/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const (
	RoleHR     = "hr"
	RoleViewer = "viewer"
)

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

// policyRows is the whole authorization table. Two roles: viewer reads
// everything, hr additionally mutates. Role membership comes from the
// token claim, not from storage.
var policyRows = [][3]string{
	{RoleViewer, "employee", "read"},
	{RoleViewer, "schedule", "read"},
	{RoleViewer, "attendance", "read"},
	{RoleViewer, "salary", "read"},
	{RoleViewer, "adjustment", "read"},
	{RoleViewer, "payroll", "read"},

	{RoleHR, "employee", "create"},
	{RoleHR, "employee", "update"},
	{RoleHR, "schedule", "create"},
	{RoleHR, "schedule", "update"},
	{RoleHR, "attendance", "create"},
	{RoleHR, "adjustment", "create"},
	{RoleHR, "salary", "update"},
	{RoleHR, "payroll", "approve"},
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	// hr inherits every viewer permission.
	if _, err := enforcer.AddGroupingPolicy(RoleHR, RoleViewer); err != nil {
		return nil, err
	}
	for _, row := range policyRows {
		if _, err := enforcer.AddPolicy(row[0], row[1], row[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == "" {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("actor_id", req.ActorID),
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("actor_id", req.ActorID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
