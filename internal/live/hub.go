// Package live рассылает уведомления об изменении коллекций подписчикам
package live

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// Hub локальная шина publish/subscribe по коллекциям
type Hub struct {
	mu   sync.Mutex
	subs map[domain.Collection]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[domain.Collection]map[*Subscription]struct{})}
}

// Subscribe оформляет подписку на изменения коллекции
// Подписку необходимо закрыть через Close
func (h *Hub) Subscribe(collection domain.Collection) *Subscription {
	sub := &Subscription{
		hub:        h,
		collection: collection,
		ch:         make(chan struct{}, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[*Subscription]struct{})
	}
	h.subs[collection][sub] = struct{}{}
	return sub
}

// Publish уведомляет подписчиков коллекции
// Уведомления схлопываются: подписчик перечитывает полный снимок
func (h *Hub) Publish(collection domain.Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[collection] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Notify реализует интерфейс уведомителя сервисов
func (h *Hub) Notify(_ context.Context, collection domain.Collection) {
	h.Publish(collection)
}

// Subscribers количество подписчиков коллекции
func (h *Hub) Subscribers(collection domain.Collection) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[collection])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs[sub.collection], sub)
	if len(h.subs[sub.collection]) == 0 {
		delete(h.subs, sub.collection)
	}
	close(sub.ch)
}

// Subscription подписка на одну коллекцию
type Subscription struct {
	hub        *Hub
	collection domain.Collection
	ch         chan struct{}
	once       sync.Once
}

// C канал уведомлений; закрывается после Close
func (s *Subscription) C() <-chan struct{} {
	return s.ch
}

// Collection коллекция подписки
func (s *Subscription) Collection() domain.Collection {
	return s.collection
}

// Close отменяет подписку; повторный вызов безопасен
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
