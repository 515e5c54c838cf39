package vendors

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/auth"
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/deletion"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/storagetest"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopNotifier struct{ calls int }

func (n *nopNotifier) Notify(context.Context, domain.Collection) { n.calls++ }

func setup(t *testing.T, opts Options) (*Service, *vendorRepo.Repository) {
	t.Helper()
	env := storagetest.New(t)
	repo := vendorRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)
	clock := &fixedTime{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Vendor{ID: "sd", Name: "admin", IsAdmin: true, PasswordHash: &hash}))
	require.NoError(t, repo.Create(ctx, &domain.Vendor{ID: "vendor-a", Name: "A"}))
	require.NoError(t, repo.Create(ctx, &domain.Vendor{ID: "vendor-b", Name: "B", PasswordHash: &hash}))

	if opts.SeedAdminID == "" {
		opts.SeedAdminID = "sd"
	}
	if opts.ConfirmationTTL == 0 {
		opts.ConfirmationTTL = time.Minute
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewService(repo, tokens, deletion.NewStore(), &nopNotifier{}, opts, clock, logger.NewNop())
	return svc, repo
}

func TestService_Login(t *testing.T) {
	svc, _ := setup(t, Options{AllowPasswordless: true})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &models.LoginRequest{VendorID: "SD", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "sd", resp.Vendor.ID)
	assert.True(t, resp.Vendor.IsAdmin)

	_, err = svc.Login(ctx, &models.LoginRequest{VendorID: "sd", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{VendorID: "nobody"})
	assert.ErrorIs(t, err, ErrVendorNotFound)

	resp, err = svc.Login(ctx, &models.LoginRequest{VendorID: "vendor-a"})
	require.NoError(t, err)
	assert.False(t, resp.Vendor.HasPassword)
}

func TestService_LoginPasswordlessDisabled(t *testing.T) {
	svc, _ := setup(t, Options{AllowPasswordless: false})

	_, err := svc.Login(context.Background(), &models.LoginRequest{VendorID: "vendor-a"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_CreateRequiresAdmin(t *testing.T) {
	svc, _ := setup(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "vendor-a", &models.CreateVendorRequest{ID: "vendor-c", Name: "C"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	created, err := svc.Create(ctx, "sd", &models.CreateVendorRequest{ID: "vendor-c", Name: "C", Password: ptr.Ptr("pass1")})
	require.NoError(t, err)
	assert.True(t, created.HasPassword)

	_, err = svc.Create(ctx, "sd", &models.CreateVendorRequest{ID: "VENDOR-C", Name: "C2"})
	assert.ErrorIs(t, err, ErrVendorExists)

	_, err = svc.Create(ctx, "sd", &models.CreateVendorRequest{ID: "has space", Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := setup(t, Options{})
	ctx := context.Background()

	resp, err := svc.UpdateProfile(ctx, "vendor-a", "vendor-a", &models.UpdateVendorRequest{Name: ptr.Ptr("攤商A")})
	require.NoError(t, err)
	assert.Equal(t, "攤商A", resp.Name)

	_, err = svc.UpdateProfile(ctx, "vendor-a", "vendor-a", &models.UpdateVendorRequest{IsAdmin: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdateProfile(ctx, "vendor-a", "vendor-b", &models.UpdateVendorRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = svc.UpdateProfile(ctx, "sd", "vendor-b", &models.UpdateVendorRequest{IsAdmin: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)

	_, err = svc.UpdateProfile(ctx, "vendor-b", "sd", &models.UpdateVendorRequest{IsAdmin: ptr.Ptr(false)})
	assert.ErrorIs(t, err, ErrProtectedVendor)
}

func TestService_ChangePassword(t *testing.T) {
	svc, repo := setup(t, Options{})
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "vendor-b", "vendor-b", &models.ChangePasswordRequest{NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, "vendor-b", "vendor-b", &models.ChangePasswordRequest{
		CurrentPassword: ptr.Ptr("secret"), NewPassword: "newpass",
	})
	require.NoError(t, err)

	// администратор сбрасывает пароль без текущего
	require.NoError(t, svc.ChangePassword(ctx, "sd", "vendor-b", &models.ChangePasswordRequest{}))
	v, err := repo.GetByID(ctx, "vendor-b")
	require.NoError(t, err)
	assert.False(t, v.HasPassword())

	err = svc.ChangePassword(ctx, "vendor-a", "vendor-a", &models.ChangePasswordRequest{NewPassword: "abc"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ChangePassword(ctx, "vendor-a", "vendor-b", &models.ChangePasswordRequest{NewPassword: "abcd"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_PasswordTooLongForBcrypt(t *testing.T) {
	svc, repo := setup(t, Options{})
	ctx := context.Background()
	long := strings.Repeat("x", domain.MaxPasswordBytes+8)

	err := svc.ChangePassword(ctx, "vendor-a", "vendor-a", &models.ChangePasswordRequest{NewPassword: long})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrInternal)

	v, err := repo.GetByID(ctx, "vendor-a")
	require.NoError(t, err)
	assert.False(t, v.HasPassword())

	_, err = svc.Create(ctx, "sd", &models.CreateVendorRequest{ID: "vendor-c", Name: "C", Password: ptr.Ptr(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// ровно 72 байта допустимо
	require.NoError(t, svc.ChangePassword(ctx, "vendor-a", "vendor-a", &models.ChangePasswordRequest{
		NewPassword: strings.Repeat("x", domain.MaxPasswordBytes),
	}))
}

func TestService_TwoPhaseDeletion(t *testing.T) {
	svc, repo := setup(t, Options{})
	ctx := context.Background()

	_, err := svc.RequestDeletion(ctx, "sd", "SD")
	assert.ErrorIs(t, err, ErrProtectedVendor)

	_, err = svc.RequestDeletion(ctx, "vendor-a", "vendor-b")
	assert.ErrorIs(t, err, ErrAccessDenied)

	ticket, err := svc.RequestDeletion(ctx, "sd", "Vendor-B")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ConfirmDeletion(ctx, "sd", "vendor-a", ticket.Token), ErrConfirmationInvalid)

	ticket, err = svc.RequestDeletion(ctx, "sd", "vendor-b")
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmDeletion(ctx, "sd", "VENDOR-B", ticket.Token))

	_, err = repo.GetByID(ctx, "vendor-b")
	assert.ErrorIs(t, err, vendorRepo.ErrVendorNotFound)
}
