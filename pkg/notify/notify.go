package notify

import (
	"context"

	"github.com/storely/wishsync/pkg/logger"
)

// Notifier is the transient notification surface the store emits user-facing
// notices to. UIs plug in a toast implementation; services a log-backed one.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// LogNotifier forwards notices to the structured logger.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Success(ctx context.Context, message string) {
	if n == nil || n.logg == nil {
		return
	}
	n.logg.Info(n.logg.WithField(ctx, "notice", "success"), message)
}

func (n *LogNotifier) Error(ctx context.Context, message string) {
	if n == nil || n.logg == nil {
		return
	}
	n.logg.Warn(n.logg.WithField(ctx, "notice", "error"), message)
}

// Nop discards every notice.
type Nop struct{}

func (Nop) Success(context.Context, string) {}

func (Nop) Error(context.Context, string) {}
