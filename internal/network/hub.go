package network

import (
	"context"
	"sync"

	"maw-server/internal/domain"
	"maw-server/pkg/api"
	"maw-server/pkg/logger"
)

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Реализует engine.Sink: каждый подписчик получает общие строки и личные,
// адресованные ему.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: PlayerID -> Личный канал
	subscribers map[domain.PlayerID]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[domain.PlayerID]chan api.ServerResponse),
	}
}

// Register создает личный канал для игрока
func (b *Broadcaster) Register(player domain.PlayerID) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем: старое соединение отключится само
	if old, ok := b.subscribers[player]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[player] = ch
	return ch
}

// Unregister удаляет подписчика, если канал всё ещё его
func (b *Broadcaster) Unregister(player domain.PlayerID, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[player]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, player)
	}
}

// SendTo отправляет сообщение конкретному игроку (Unicast)
func (b *Broadcaster) SendTo(player domain.PlayerID, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[player]; ok {
		b.trySend(player, ch, msg)
	}
}

// Publish раскладывает ленту тика по подписчикам
func (b *Broadcaster) Publish(_ context.Context, entries []domain.LogEntry) {
	if len(entries) == 0 {
		return
	}
	tick := entries[len(entries)-1].Tick

	b.mu.RLock()
	defer b.mu.RUnlock()

	for player, ch := range b.subscribers {
		var logs []api.LogEntry
		for _, e := range entries {
			if e.VisibleTo(player) {
				logs = append(logs, ToAPI(e))
			}
		}
		if len(logs) == 0 {
			continue
		}
		b.trySend(player, ch, api.ServerResponse{
			Type:       api.TypeNarration,
			Tick:       tick,
			MyPlayerID: uint64(player),
			Logs:       logs,
		})
	}
}

// trySend не блокирует цикл игры: медленный клиент теряет сообщения
func (b *Broadcaster) trySend(player domain.PlayerID, ch chan api.ServerResponse, msg api.ServerResponse) {
	select {
	case ch <- msg:
	default:
		logger.For("hub").WithField("player", player).Warn("Channel full, message dropped.")
	}
}

// HasSubscriber проверяет, подключён ли игрок
func (b *Broadcaster) HasSubscriber(player domain.PlayerID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[player]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// ToAPI переводит запись движка в DTO клиента
func ToAPI(e domain.LogEntry) api.LogEntry {
	return api.LogEntry{
		ID:        e.ID,
		Text:      e.Text,
		Type:      string(e.Type),
		Private:   e.Private,
		Timestamp: e.Timestamp,
	}
}
