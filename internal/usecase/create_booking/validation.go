package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VendorID) == "" {
		return fmt.Errorf("%w: vendorID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.MarketID) == "" {
		return ErrMarketRequired
	}

	if _, err := domain.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	if req.Remark != nil && utf8.RuneCountInString(*req.Remark) > domain.MaxRemarkLength {
		return fmt.Errorf("%w: remark is longer than %d characters", ErrInvalidInput, domain.MaxRemarkLength)
	}

	if req.SalesQuantity != nil && (*req.SalesQuantity < 0 || *req.SalesQuantity > domain.MaxSalesQuantity) {
		return fmt.Errorf("%w: salesQuantity must be between 0 and %d", ErrInvalidInput, domain.MaxSalesQuantity)
	}

	return nil
}
