package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AIforimpact22/HR-amas/internal/shared/contextutil"
)

// StdoutAuditLogger writes audit entries through the global zap logger.
// Deployments that ship audit events elsewhere swap the interface, not the
// call sites.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}

	md := contextutil.ExtractMetadata(ctx)
	if md.RequestID != "" {
		fields = append(fields, zap.String("request_id", md.RequestID))
	}
	if md.ActorID != "" {
		fields = append(fields, zap.String("actor_id", md.ActorID))
	}

	zap.L().Named("audit").Info("audit event", fields...)
}
