package models

import (
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// MarketRequest запрос на создание или изменение рынка
type MarketRequest struct {
	City string `json:"city"`
	Name string `json:"name"`
}

// MarketResponse ответ с данными рынка
type MarketResponse struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarketListResponse ответ со списком рынков
type MarketListResponse struct {
	Markets []MarketResponse `json:"markets"`
}

// FromDomainMarket конвертирует domain модель в DTO
func FromDomainMarket(m *domain.Market) *MarketResponse {
	if m == nil {
		return nil
	}
	return &MarketResponse{
		ID:        m.ID,
		City:      m.City,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainMarketList конвертирует список domain моделей в DTO
func FromDomainMarketList(markets []*domain.Market) *MarketListResponse {
	resp := &MarketListResponse{Markets: make([]MarketResponse, 0, len(markets))}
	for _, m := range markets {
		resp.Markets = append(resp.Markets, *FromDomainMarket(m))
	}
	return resp
}
