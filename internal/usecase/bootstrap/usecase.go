package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// UseCase заполняет пустое хранилище начальными данными
type UseCase struct {
	vendorRepo   VendorRepository
	marketRepo   MarketRepository
	txManager    TransactionManager
	seed         Seed
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vendorRepo VendorRepository,
	marketRepo MarketRepository,
	txManager TransactionManager,
	seed Seed,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		vendorRepo:   vendorRepo,
		marketRepo:   marketRepo,
		txManager:    txManager,
		seed:         seed,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет заполнение, если в хранилище еще нет ни одного продавца
// Повторный запуск ничего не меняет
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	// 1. Валидация начальных данных
	if strings.TrimSpace(uc.seed.AdminID) == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidSeed)
	}
	for _, m := range uc.seed.Markets {
		if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("%w: market id and name are required", ErrInvalidSeed)
		}
	}

	resp := &Response{}
	now := uc.timeProvider.Now().UTC()

	// 2. Проверка и запись в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		count, err := uc.vendorRepo.Count(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Execute - count vendors: %v", ErrStore, err)
		}
		if count > 0 {
			return nil
		}

		vendors := []*domain.Vendor{{
			ID:        strings.TrimSpace(uc.seed.AdminID),
			Name:      uc.seed.AdminName,
			IsAdmin:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}}
		if id := strings.TrimSpace(uc.seed.VendorID); id != "" && !domain.SameVendor(id, uc.seed.AdminID) {
			vendors = append(vendors, &domain.Vendor{
				ID:        id,
				Name:      uc.seed.VendorName,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		for _, v := range vendors {
			if v.Name == "" {
				v.Name = v.ID
			}
			if err := uc.vendorRepo.Upsert(txCtx, v); err != nil {
				return fmt.Errorf("%w: Execute - upsert vendor %s: %v", ErrStore, v.ID, err)
			}
		}

		for _, m := range uc.seed.Markets {
			market := &domain.Market{
				ID:        strings.TrimSpace(m.ID),
				City:      strings.TrimSpace(m.City),
				Name:      strings.TrimSpace(m.Name),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := uc.marketRepo.Upsert(txCtx, market); err != nil {
				return fmt.Errorf("%w: Execute - upsert market %s: %v", ErrStore, market.ID, err)
			}
		}

		resp.Seeded = true
		resp.Vendors = len(vendors)
		resp.Markets = len(uc.seed.Markets)
		return nil
	})
	if err != nil {
		uc.logger.Error("Bootstrap: %v", err)
		return nil, err
	}

	if resp.Seeded {
		uc.logger.Info("Bootstrap: seeded %d vendor(s) and %d market(s)", resp.Vendors, resp.Markets)
	}
	return resp, nil
}
