package confirm_vendor_deletion

import "context"

type VendorService interface {
	ConfirmDeletion(ctx context.Context, actorID, vendorID, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
