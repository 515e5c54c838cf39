package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type event struct {
	Instance   string            `json:"instance"`
	Collection domain.Collection `json:"collection"`
}

// RedisRelay пересылает уведомления между экземплярами сервиса через Redis pub/sub
type RedisRelay struct {
	client   *redis.Client
	channel  string
	hub      *Hub
	instance string
	log      Logger
}

// NewRedisRelay создает relay поверх локального hub
func NewRedisRelay(client *redis.Client, channel string, hub *Hub, log Logger) *RedisRelay {
	return &RedisRelay{
		client:   client,
		channel:  channel,
		hub:      hub,
		instance: uuid.NewString(),
		log:      log,
	}
}

// Notify уведомляет локальных подписчиков и публикует событие для остальных экземпляров
// Ошибка публикации не прерывает запись, она только логируется
func (r *RedisRelay) Notify(ctx context.Context, collection domain.Collection) {
	r.hub.Publish(collection)

	payload, err := json.Marshal(event{Instance: r.instance, Collection: collection})
	if err != nil {
		r.log.Error("RedisRelay: marshal event: %v", err)
		return
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.log.Warn("RedisRelay: publish to %s failed: %v", r.channel, err)
	}
}

// Run слушает канал Redis до отмены контекста
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// Дожидаемся подтверждения подписки
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("live: subscribe %s: %w", r.channel, err)
	}

	r.log.Info("RedisRelay: listening on channel %s", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("live: redis subscription closed")
			}
			collection, fromSelf, err := r.decode(msg.Payload)
			if err != nil {
				r.log.Warn("RedisRelay: skip message: %v", err)
				continue
			}
			if fromSelf {
				continue
			}
			r.hub.Publish(collection)
		}
	}
}

func (r *RedisRelay) decode(payload string) (domain.Collection, bool, error) {
	var ev event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return "", false, fmt.Errorf("decode event: %w", err)
	}
	collection, ok := domain.ParseCollection(string(ev.Collection))
	if !ok {
		return "", false, fmt.Errorf("unknown collection %q", ev.Collection)
	}
	return collection, ev.Instance == r.instance, nil
}
