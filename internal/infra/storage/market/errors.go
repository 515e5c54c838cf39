package market

import "errors"

var (
	// ErrMarketNotFound возвращается, когда рынок не найден
	ErrMarketNotFound = errors.New("market.repository: market not found")

	ErrBuildQuery = errors.New("market.repository: failed to build query")
	ErrExecQuery  = errors.New("market.repository: failed to execute query")
	ErrScanRow    = errors.New("market.repository: failed to scan row")
)
