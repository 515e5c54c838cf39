package delete_market

import "context"

type MarketService interface {
	Delete(ctx context.Context, actorID, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
