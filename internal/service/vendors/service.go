package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StallCalendar/internal/auth"
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

// Options настройки сервиса продавцов
type Options struct {
	AllowPasswordless bool
	SeedAdminID       string
	ConfirmationTTL   time.Duration
}

// Service сервис для работы с продавцами и входом
type Service struct {
	vendorRepo   VendorRepository
	tokens       TokenIssuer
	deletions    DeletionStore
	notifier     Notifier
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса продавцов
func NewService(
	vendorRepo VendorRepository,
	tokens TokenIssuer,
	deletions DeletionStore,
	notifier Notifier,
	opts Options,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		vendorRepo:   vendorRepo,
		tokens:       tokens,
		deletions:    deletions,
		notifier:     notifier,
		opts:         opts,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Login проверяет пароль и выпускает токен сессии
// Продавцы без пароля входят по одному ID, если это разрешено настройками
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	vendorID := strings.TrimSpace(req.VendorID)
	if vendorID == "" {
		return nil, fmt.Errorf("%w: vendorId is required", ErrInvalidInput)
	}

	vendor, err := s.getVendor(ctx, "Login", vendorID)
	if err != nil {
		return nil, err
	}

	if vendor.HasPassword() {
		if err := auth.CheckPassword(*vendor.PasswordHash, req.Password); err != nil {
			s.logger.Warn("Login: wrong password for vendor=%s", vendor.ID)
			return nil, ErrInvalidCredentials
		}
	} else if !s.opts.AllowPasswordless {
		s.logger.Warn("Login: vendor=%s has no password and passwordless login is disabled", vendor.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(vendor.ID)
	if err != nil {
		s.logger.Error("Login: failed to issue token for vendor=%s: %v", vendor.ID, err)
		return nil, fmt.Errorf("%w: Login - %v", ErrInternal, err)
	}

	s.logger.Info("Login: vendor=%s logged in", vendor.ID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Vendor:    *models.FromDomainVendor(vendor),
	}, nil
}

// List возвращает всех продавцов
func (s *Service) List(ctx context.Context) (*models.VendorListResponse, error) {
	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - %v", ErrStore, err)
	}
	return models.FromDomainVendorList(vendors), nil
}

// Create добавляет продавца; доступно только администратору
func (s *Service) Create(ctx context.Context, actorID string, req *models.CreateVendorRequest) (*models.VendorResponse, error) {
	s.logger.Info("Create: adding vendor id=%s by actor=%s", req.ID, actorID)

	if err := s.requireAdmin(ctx, "Create", actorID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	if err := validateVendorID(id); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	vendor := &domain.Vendor{
		ID:        id,
		Name:      name,
		IsAdmin:   req.IsAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		vendor.PasswordHash = &hash
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorExists) {
			s.logger.Warn("Create: vendor id=%s already exists", id)
			return nil, ErrVendorExists
		}
		s.logger.Error("Create: repository error for vendor id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Create - %v", ErrStore, err)
	}

	s.notifier.Notify(ctx, domain.CollectionVendors)
	s.logger.Info("Create: vendor id=%s added", id)
	return models.FromDomainVendor(vendor), nil
}

// UpdateProfile обновляет профиль продавца
// Продавец может менять свое имя, администратор также флаг администратора
func (s *Service) UpdateProfile(ctx context.Context, actorID, vendorID string, req *models.UpdateVendorRequest) (*models.VendorResponse, error) {
	s.logger.Info("UpdateProfile: vendor id=%s by actor=%s", vendorID, actorID)

	actor, err := s.getActor(ctx, "UpdateProfile", actorID)
	if err != nil {
		return nil, err
	}
	isAdmin := actor.Role().CanManageRoster()
	if !isAdmin && !domain.SameVendor(actorID, vendorID) {
		s.logger.Warn("UpdateProfile: actor=%s cannot edit vendor=%s", actorID, vendorID)
		return nil, ErrAccessDenied
	}
	if req.IsAdmin != nil && !isAdmin {
		return nil, ErrAccessDenied
	}

	vendor, err := s.getVendor(ctx, "UpdateProfile", vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		vendor.Name = name
	}
	if req.IsAdmin != nil {
		if !*req.IsAdmin && s.isSeedAdmin(vendor.ID) {
			return nil, ErrProtectedVendor
		}
		vendor.IsAdmin = *req.IsAdmin
	}
	vendor.UpdatedAt = s.timeProvider.Now()

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, s.mapRepoError("UpdateProfile", vendorID, err)
	}

	s.notifier.Notify(ctx, domain.CollectionVendors)
	return models.FromDomainVendor(vendor), nil
}

// ChangePassword меняет пароль продавца
// Продавец подтверждает текущим паролем, администратор сбрасывает чужой пароль без него
func (s *Service) ChangePassword(ctx context.Context, actorID, vendorID string, req *models.ChangePasswordRequest) error {
	s.logger.Info("ChangePassword: vendor id=%s by actor=%s", vendorID, actorID)

	actor, err := s.getActor(ctx, "ChangePassword", actorID)
	if err != nil {
		return err
	}
	self := domain.SameVendor(actorID, vendorID)
	if !self && !actor.Role().CanManageRoster() {
		return ErrAccessDenied
	}

	vendor, err := s.getVendor(ctx, "ChangePassword", vendorID)
	if err != nil {
		return err
	}

	if self && vendor.HasPassword() {
		if req.CurrentPassword == nil || auth.CheckPassword(*vendor.PasswordHash, *req.CurrentPassword) != nil {
			s.logger.Warn("ChangePassword: wrong current password for vendor=%s", vendor.ID)
			return ErrInvalidCredentials
		}
	}

	var hash *string
	if req.NewPassword != "" {
		h, err := s.hash(req.NewPassword)
		if err != nil {
			return err
		}
		hash = &h
	}

	if err := s.vendorRepo.SetPassword(ctx, vendor.ID, hash, s.timeProvider.Now()); err != nil {
		return s.mapRepoError("ChangePassword", vendorID, err)
	}

	s.notifier.Notify(ctx, domain.CollectionVendors)
	s.logger.Info("ChangePassword: password of vendor=%s updated", vendor.ID)
	return nil
}

// RequestDeletion выдает одноразовое подтверждение удаления продавца
func (s *Service) RequestDeletion(ctx context.Context, actorID, vendorID string) (*models.DeletionTicketResponse, error) {
	s.logger.Info("RequestDeletion: vendor id=%s by actor=%s", vendorID, actorID)

	if err := s.requireAdmin(ctx, "RequestDeletion", actorID); err != nil {
		return nil, err
	}
	vendor, err := s.getVendor(ctx, "RequestDeletion", vendorID)
	if err != nil {
		return nil, err
	}
	if s.isSeedAdmin(vendor.ID) {
		s.logger.Warn("RequestDeletion: vendor id=%s is protected", vendor.ID)
		return nil, ErrProtectedVendor
	}

	ticket := domain.DeletionTicket{
		Token:       uuid.NewString(),
		Kind:        domain.DeletionVendor,
		TargetID:    vendor.Key(),
		RequestedBy: actorID,
		ExpiresAt:   s.timeProvider.Now().Add(s.opts.ConfirmationTTL),
	}
	if err := s.deletions.Put(ticket); err != nil {
		s.logger.Error("RequestDeletion: failed to store ticket for vendor id=%s: %v", vendorID, err)
		return nil, fmt.Errorf("%w: RequestDeletion - %v", ErrInternal, err)
	}

	return &models.DeletionTicketResponse{Token: ticket.Token, ExpiresAt: ticket.ExpiresAt}, nil
}

// ConfirmDeletion удаляет продавца по ранее выданному подтверждению
// Бронирования продавца остаются и показываются по снимку имени
func (s *Service) ConfirmDeletion(ctx context.Context, actorID, vendorID, token string) error {
	s.logger.Info("ConfirmDeletion: vendor id=%s by actor=%s", vendorID, actorID)

	now := s.timeProvider.Now()
	_, err := s.deletions.TakeIf(token, func(t domain.DeletionTicket) bool {
		return t.Matches(domain.DeletionVendor, domain.VendorKey(vendorID), actorID) && !t.Expired(now)
	})
	if err != nil {
		s.logger.Warn("ConfirmDeletion: invalid confirmation for vendor id=%s", vendorID)
		return ErrConfirmationInvalid
	}

	if err := s.requireAdmin(ctx, "ConfirmDeletion", actorID); err != nil {
		return err
	}
	if s.isSeedAdmin(vendorID) {
		return ErrProtectedVendor
	}

	if err := s.vendorRepo.Delete(ctx, vendorID); err != nil {
		return s.mapRepoError("ConfirmDeletion", vendorID, err)
	}

	s.notifier.Notify(ctx, domain.CollectionVendors)
	s.logger.Info("ConfirmDeletion: vendor id=%s deleted", vendorID)
	return nil
}

func (s *Service) isSeedAdmin(vendorID string) bool {
	return s.opts.SeedAdminID != "" && domain.SameVendor(vendorID, s.opts.SeedAdminID)
}

// requireAdmin перечитывает запись продавца и проверяет флаг администратора
func (s *Service) requireAdmin(ctx context.Context, op, actorID string) error {
	actor, err := s.getActor(ctx, op, actorID)
	if err != nil {
		return err
	}
	if !actor.Role().CanManageRoster() {
		s.logger.Warn("%s: actor=%s is not an admin", op, actorID)
		return ErrAccessDenied
	}
	return nil
}

// getActor загружает продавца, от имени которого выполняется запрос
// Удаленный продавец с действующим токеном получает отказ в доступе
func (s *Service) getActor(ctx context.Context, op, actorID string) (*domain.Vendor, error) {
	actor, err := s.vendorRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("%s: repository error for actor=%s: %v", op, actorID, err)
		return nil, fmt.Errorf("%w: %s - %v", ErrStore, op, err)
	}
	return actor, nil
}

func (s *Service) getVendor(ctx context.Context, op, vendorID string) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, s.mapRepoError(op, vendorID, err)
	}
	return vendor, nil
}

func (s *Service) mapRepoError(op, vendorID string, err error) error {
	if errors.Is(err, vendorRepo.ErrVendorNotFound) {
		s.logger.Warn("%s: vendor id=%s not found", op, vendorID)
		return ErrVendorNotFound
	}
	s.logger.Error("%s: repository error for vendor id=%s: %v", op, vendorID, err)
	return fmt.Errorf("%w: %s - %v", ErrStore, op, err)
}

func (s *Service) hash(password string) (string, error) {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return "", fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	if len(password) > domain.MaxPasswordBytes {
		return "", fmt.Errorf("%w: password must not exceed %d bytes", ErrInvalidInput, domain.MaxPasswordBytes)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return hash, nil
}

func validateVendorID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(id) > domain.MaxVendorIDLength {
		return fmt.Errorf("%w: id is longer than %d characters", ErrInvalidInput, domain.MaxVendorIDLength)
	}
	if strings.ContainsAny(id, " \t/?#") {
		return fmt.Errorf("%w: id must not contain spaces or URL separators", ErrInvalidInput)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}
