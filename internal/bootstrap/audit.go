package bootstrap

import "context"

// AuditLog is one operator-facing record: server lifecycle and posting changes.
type AuditLog struct {
	Action    string
	Message   string
	RequestID string
	Meta      map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
