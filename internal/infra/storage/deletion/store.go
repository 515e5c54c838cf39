package deletion

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// Store хранилище ожидающих подтверждения удалений
// Подтверждения живут в памяти процесса и теряются при перезапуске
type Store struct {
	mu      sync.Mutex
	tickets map[string]domain.DeletionTicket
}

func NewStore() *Store {
	return &Store{tickets: make(map[string]domain.DeletionTicket)}
}

// Put сохраняет подтверждение
func (s *Store) Put(ticket domain.DeletionTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[ticket.Token]; ok {
		return ErrTicketExists
	}
	s.tickets[ticket.Token] = ticket
	return nil
}

// TakeIf извлекает подтверждение, только если match его принимает
// Отклоненное подтверждение остается в хранилище; повторно взять принятый токен нельзя
func (s *Store) TakeIf(token string, match func(domain.DeletionTicket) bool) (*domain.DeletionTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[token]
	if !ok {
		return nil, ErrTicketNotFound
	}
	if !match(ticket) {
		return nil, ErrTicketMismatch
	}
	delete(s.tickets, token)
	return &ticket, nil
}

// Sweep удаляет просроченные подтверждения и возвращает их количество
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, ticket := range s.tickets {
		if ticket.Expired(now) {
			delete(s.tickets, token)
			removed++
		}
	}
	return removed
}

// Len количество ожидающих подтверждений
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}
