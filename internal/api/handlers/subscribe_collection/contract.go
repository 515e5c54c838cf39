package subscribe_collection

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/live"
	"github.com/m04kA/SMC-StallCalendar/internal/service/collections"
)

type Subscriber interface {
	Subscribe(collection domain.Collection) *live.Subscription
}

type SnapshotLoader interface {
	Load(ctx context.Context, collection domain.Collection) (*collections.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
