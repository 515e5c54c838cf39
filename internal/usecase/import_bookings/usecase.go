package import_bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange/models"
)

// UseCase use case импорта исторических бронирований из CSV
// Проверка конфликтов при импорте не выполняется
type UseCase struct {
	bookingRepo  BookingRepository
	marketRepo   MarketRepository
	vendorRepo   VendorRepository
	txManager    TransactionManager
	notifier     Notifier
	outcomes     OutcomeRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	marketRepo MarketRepository,
	vendorRepo VendorRepository,
	txManager TransactionManager,
	notifier Notifier,
	outcomes OutcomeRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		marketRepo:   marketRepo,
		vendorRepo:   vendorRepo,
		txManager:    txManager,
		notifier:     notifier,
		outcomes:     outcomes,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет импорт
// Все строки пишутся в одной транзакции: ошибка хранилища откатывает весь импорт,
// а некорректные строки только попадают в отчет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ImportBookings: %d bytes by actor=%s", len(req.Data), req.ActorID)

	// 1. Только администратор
	actor, err := uc.vendorRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: failed to get actor: %v", ErrStore, err)
	}
	if !actor.Role().CanExchangeBookings() {
		uc.logger.Warn("ImportBookings: actor=%s is not an admin", req.ActorID)
		return nil, ErrAccessDenied
	}

	// 2. Разбор файла
	rows, err := exchange.DecodeCSV(req.Data)
	if err != nil {
		uc.logger.Warn("ImportBookings: invalid file: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	var resp *Response
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3. Справочники загружаются один раз на весь файл
		vendors, err := uc.vendorRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to list vendors: %v", ErrStore, err)
		}
		markets, err := uc.marketRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to list markets: %v", ErrStore, err)
		}

		imp := &importer{
			uc:      uc,
			vendors: make(map[string]*domain.Vendor, len(vendors)),
			markets: markets,
			seen:    make(map[string]struct{}),
			now:     uc.timeProvider.Now(),
			resp:    &Response{Errors: []RowError{}},
		}
		for _, v := range vendors {
			imp.vendors[v.Key()] = v
		}

		for i, row := range rows {
			if err := imp.importRow(txCtx, i+2, row); err != nil {
				return err
			}
		}
		resp = imp.resp
		return nil
	})
	if err != nil {
		uc.logger.Error("ImportBookings: aborted: %v", err)
		uc.outcomes.BookingOutcome("import", "failed")
		if errors.Is(err, ErrStore) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	uc.outcomes.BookingOutcome("import", "ok")
	if resp.CreatedMarkets > 0 {
		uc.notifier.Notify(ctx, domain.CollectionMarkets)
	}
	if resp.Imported > 0 {
		uc.notifier.Notify(ctx, domain.CollectionBookings)
	}

	uc.logger.Info("ImportBookings: imported=%d, skipped=%d, createdMarkets=%d, rowErrors=%d",
		resp.Imported, resp.Skipped, resp.CreatedMarkets, len(resp.Errors))
	return resp, nil
}

// importer состояние одного импорта
type importer struct {
	uc      *UseCase
	vendors map[string]*domain.Vendor
	markets []*domain.Market
	seen    map[string]struct{}
	now     time.Time
	resp    *Response
}

// importRow импортирует строку; возвращает ошибку только при сбое хранилища
func (imp *importer) importRow(ctx context.Context, line int, row models.Row) error {
	date, err := normalizeDate(row.Date)
	if err != nil {
		imp.rowError(line, "invalid date %q", row.Date)
		return nil
	}

	vendor, ok := imp.vendors[domain.VendorKey(row.VendorID)]
	if !ok {
		imp.rowError(line, "unknown vendor %q", row.VendorID)
		return nil
	}

	if row.MarketName == "" {
		imp.rowError(line, "marketName is empty")
		return nil
	}

	// дубликаты внутри файла
	key := date + "\x00" + vendor.Key() + "\x00" + row.MarketName
	if _, dup := imp.seen[key]; dup {
		imp.resp.Skipped++
		return nil
	}
	imp.seen[key] = struct{}{}

	// дубликаты в хранилище
	existing, err := imp.uc.bookingRepo.FindByDateVendorMarketName(ctx, date, vendor.ID, row.MarketName)
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrStore, line, err)
	}
	if len(existing) > 0 {
		imp.resp.Skipped++
		return nil
	}

	market, err := imp.resolveMarket(ctx, row)
	if err != nil {
		return err
	}
	if market == nil {
		imp.rowError(line, "unknown market %q; add marketCity to create it", row.MarketName)
		return nil
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		Date:      date,
		Market:    market.Snapshot(),
		Vendor:    domain.VendorSnapshot{ID: vendor.ID, Name: vendor.Name},
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	}
	if err := imp.uc.bookingRepo.Create(ctx, booking); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrStore, line, err)
	}

	imp.resp.Imported++
	return nil
}

// resolveMarket ищет рынок по названию и городу
// Неизвестный рынок с указанным городом создается; без города возвращается nil
func (imp *importer) resolveMarket(ctx context.Context, row models.Row) (*domain.Market, error) {
	for _, m := range imp.markets {
		if m.Name == row.MarketName && (row.MarketCity == "" || m.City == row.MarketCity) {
			return m, nil
		}
	}
	if row.MarketCity == "" {
		return nil, nil
	}

	market := &domain.Market{
		ID:        uuid.NewString(),
		City:      row.MarketCity,
		Name:      row.MarketName,
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	}
	if err := imp.uc.marketRepo.Create(ctx, market); err != nil {
		return nil, fmt.Errorf("%w: create market %q: %v", ErrStore, market.Label(), err)
	}

	imp.markets = append(imp.markets, market)
	imp.resp.CreatedMarkets++
	imp.uc.logger.Info("ImportBookings: created market id=%s (%s)", market.ID, market.Label())
	return market, nil
}

func (imp *importer) rowError(line int, format string, args ...interface{}) {
	imp.resp.Errors = append(imp.resp.Errors, RowError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// normalizeDate приводит дату в свободном формате к YYYY-MM-DD
func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("empty date")
	}
	if _, err := domain.ParseDate(value); err == nil {
		return value, nil
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return "", err
	}
	return domain.FormatDate(t), nil
}
