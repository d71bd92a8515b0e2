package engine

import (
	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Outcome - итог обработки одного события
type Outcome struct {
	Event  domain.Event
	Result handlers.Result
	Err    error // нарушение контракта мира
}

// Dispatcher раскладывает события по очередям их типов и отдаёт каждое
// ровно одному хендлеру. Внутри типа порядок FIFO, типы обрабатываются
// в порядке регистрации.
type Dispatcher struct {
	world    *domain.World
	order    []domain.EventType
	handlers map[domain.EventType]handlers.HandlerFunc
	queues   map[domain.EventType][]domain.Event
}

func NewDispatcher(w *domain.World) *Dispatcher {
	return &Dispatcher{
		world:    w,
		handlers: make(map[domain.EventType]handlers.HandlerFunc),
		queues:   make(map[domain.EventType][]domain.Event),
	}
}

// Register назначает хендлер типу события.
// Повторная регистрация заменяет хендлер, но не меняет позицию типа в порядке.
func (d *Dispatcher) Register(t domain.EventType, h handlers.HandlerFunc) {
	if _, ok := d.handlers[t]; !ok {
		d.order = append(d.order, t)
	}
	d.handlers[t] = h
}

// Enqueue ставит событие в очередь его типа.
// Событие без хендлера логируется и отбрасывается (возвращает false).
func (d *Dispatcher) Enqueue(ev domain.Event) bool {
	if _, ok := d.handlers[ev.Type]; !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "dispatcher",
			"event":     ev.Type.String(),
			"actor":     ev.Actor,
		}).Warn("No handler registered for event, dropping.")
		return false
	}
	d.queues[ev.Type] = append(d.queues[ev.Type], ev)
	return true
}

// Pending - сколько событий ждёт обработки
func (d *Dispatcher) Pending() int {
	n := 0
	for _, q := range d.queues {
		n += len(q)
	}
	return n
}

// Drain обрабатывает все накопленные события и очищает очереди
func (d *Dispatcher) Drain() []Outcome {
	var out []Outcome
	for _, t := range d.order {
		queue := d.queues[t]
		if len(queue) == 0 {
			continue
		}
		d.queues[t] = nil

		handler := d.handlers[t]
		for _, ev := range queue {
			res, err := handler(handlers.Context{World: d.world, Actor: ev.Actor}, ev)
			out = append(out, Outcome{Event: ev, Result: res, Err: err})
		}
	}
	return out
}
