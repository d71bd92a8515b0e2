// Package actions содержит хендлеры игровых событий.
package actions

import (
	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
)

// Registrar - то, куда регистрируются хендлеры (диспетчер событий)
type Registrar interface {
	Register(t domain.EventType, h handlers.HandlerFunc)
}

// RegisterAll регистрирует все хендлеры в фиксированном порядке.
// Порядок регистрации определяет порядок обработки очередей за тик.
func RegisterAll(r Registrar) {
	r.Register(domain.EventAttack, handlers.ForEvent(domain.EventAttack, HandleAttack))
	r.Register(domain.EventDevour, handlers.ForEvent(domain.EventDevour, HandleDevour))
	r.Register(domain.EventMoveRoom, handlers.ForEvent(domain.EventMoveRoom, HandleMove))
	r.Register(domain.EventStruggle, handlers.ForEvent(domain.EventStruggle, HandleStruggle))
}
