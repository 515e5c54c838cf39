package models

import (
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// LoginRequest запрос входа
type LoginRequest struct {
	VendorID string `json:"vendorId"`
	Password string `json:"password"`
}

// CreateVendorRequest запрос на добавление продавца
type CreateVendorRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	IsAdmin  bool    `json:"isAdmin"`
	Password *string `json:"password,omitempty"`
}

// UpdateVendorRequest частичное обновление профиля
type UpdateVendorRequest struct {
	Name    *string `json:"name,omitempty"`
	IsAdmin *bool   `json:"isAdmin,omitempty"`
}

// ChangePasswordRequest смена пароля
// CurrentPassword обязателен, когда продавец меняет свой пароль
// Пустой NewPassword снимает пароль
type ChangePasswordRequest struct {
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword"`
}

// VendorResponse ответ с данными продавца
type VendorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IsAdmin     bool      `json:"isAdmin"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VendorListResponse ответ со списком продавцов
type VendorListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

// LoginResponse токен сессии и профиль
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Vendor    VendorResponse `json:"vendor"`
}

// DeletionTicketResponse подтверждение, которое нужно передать для удаления
type DeletionTicketResponse struct {
	Token     string    `json:"confirmation"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromDomainVendor конвертирует domain модель в DTO
func FromDomainVendor(v *domain.Vendor) *VendorResponse {
	if v == nil {
		return nil
	}
	return &VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		IsAdmin:     v.IsAdmin,
		HasPassword: v.HasPassword(),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// FromDomainVendorList конвертирует список domain моделей в DTO
func FromDomainVendorList(vendors []*domain.Vendor) *VendorListResponse {
	resp := &VendorListResponse{Vendors: make([]VendorResponse, 0, len(vendors))}
	for _, v := range vendors {
		resp.Vendors = append(resp.Vendors, *FromDomainVendor(v))
	}
	return resp
}
