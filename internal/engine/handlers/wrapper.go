package handlers

import (
	"fmt"

	"maw-server/internal/domain"
)

// TypedHandlerFunc - "чистый" хендлер, которому гарантированы тип события
// и живой актор с ActorComponent
type TypedHandlerFunc func(ctx Context, ev domain.Event, actor *domain.ActorComponent) (Result, error)

// ForEvent берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя общие проверки:
//   - событие нужного типа (иначе это ошибка маршрутизации диспетчера);
//   - актор жив (иначе нарушение контракта: события создаются только для живых);
//   - у актора остался ActorComponent (иначе гонка, TargetLost).
func ForEvent(expected domain.EventType, handler TypedHandlerFunc) HandlerFunc {
	return func(ctx Context, ev domain.Event) (Result, error) {
		// 1. Маршрутизация
		if ev.Type != expected {
			return EmptyResult(), fmt.Errorf("handler for %s got %s event: %w", expected, ev.Type, domain.ErrContractViolation)
		}

		// 2. Актор
		if !ctx.World.IsAlive(ev.Actor) {
			return EmptyResult(), fmt.Errorf("%s by %s: %w", ev.Type, ev.Actor, domain.ErrEntityNotFound)
		}
		actor, ok := ctx.World.Actors.Get(ev.Actor)
		if !ok {
			return TargetLost(), nil
		}

		// 3. Вызов чистой логики
		return handler(ctx, ev, actor)
	}
}
