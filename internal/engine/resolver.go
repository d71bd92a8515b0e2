package engine

import (
	"fmt"

	"maw-server/internal/domain"
)

// ValidationError - имя из команды не нашлось среди видимых сущностей нужного вида.
// Message уходит игроку как есть.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) (domain.Event, error) {
	return domain.Event{}, &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Тексты ошибок проверки
const (
	MsgNotAnActor     = "You are not an actor"
	MsgNotInWorld     = "You are not in this world"
	MsgDevourYourself = "You cannot devour yourself"
	MsgDevourYourHost = "You cannot devour someone who is holding you"
)

// Resolver превращает намерение с именами в событие с id сущностей.
// Ничего не меняет в мире.
type Resolver struct {
	world *domain.World
}

func NewResolver(w *domain.World) *Resolver {
	return &Resolver{world: w}
}

// PlayerEntity находит сущность игрока по внешнему id
func (r *Resolver) PlayerEntity(player domain.PlayerID) (domain.EntityID, bool) {
	found := domain.NilEntityID
	r.world.Players.Each(func(id domain.EntityID, p *domain.PlayerComponent) bool {
		if p.ID == player {
			found = id
			return false
		}
		return true
	})
	return found, !found.IsNil()
}

// Resolve проверяет намерение актора.
// Имена сравниваются точно, с учётом регистра; при дублях побеждает
// сущность, получившая компонент раньше.
func (r *Resolver) Resolve(actor domain.EntityID, intent domain.Intent) (domain.Event, error) {
	if !r.world.Actors.Has(actor) {
		return invalid(MsgNotAnActor)
	}

	switch intent.Kind {
	case domain.IntentAttack:
		target, ok := r.findActor(actor, intent.Target)
		if !ok {
			return invalid("No one named %q is here", intent.Target)
		}
		return domain.AttackEvent(actor, target), nil

	case domain.IntentDevour:
		prey, ok := r.findActor(actor, intent.Target)
		if !ok {
			return invalid("No one named %q is here", intent.Target)
		}
		if prey == actor {
			return invalid(MsgDevourYourself)
		}
		organ, ok := r.findOrgan(actor, intent.Organ)
		if !ok {
			return invalid("You have no organ named %q", intent.Organ)
		}
		// Добыча не может оказаться внутри собственного потомка
		if r.world.IsAncestor(prey, organ) {
			return invalid(MsgDevourYourHost)
		}
		return domain.DevourEvent(actor, prey, organ), nil

	case domain.IntentMoveRoom:
		room, ok := r.world.FindNamed(intent.Room, r.world.Rooms.IDs(), nil)
		if !ok {
			return invalid("There is no room named %q", intent.Room)
		}
		return domain.MoveRoomEvent(actor, room), nil

	case domain.IntentStruggle:
		return domain.StruggleEvent(actor), nil
	}

	return domain.Event{}, fmt.Errorf("resolve %s intent: %w", intent.Kind, domain.ErrContractViolation)
}

// findActor ищет актора с именем name в той же области видимости, что и actor
func (r *Resolver) findActor(actor domain.EntityID, name string) (domain.EntityID, bool) {
	scope := r.scopeOf(actor)
	return r.world.FindNamed(name, r.world.Actors.IDs(), func(id domain.EntityID) bool {
		return r.scopeOf(id) == scope
	})
}

// findOrgan ищет орган, принадлежащий самому актору
func (r *Resolver) findOrgan(actor domain.EntityID, name string) (domain.EntityID, bool) {
	return r.world.FindNamed(name, r.world.Organs.IDs(), func(id domain.EntityID) bool {
		p, ok := r.world.ParentOf(id)
		return ok && p == actor
	})
}

// scopeOf - комната сущности, а вне комнат - корень её дерева вложенности
func (r *Resolver) scopeOf(id domain.EntityID) domain.EntityID {
	if room, ok := r.world.RoomOf(id); ok {
		return room
	}
	cur := id
	for {
		p, ok := r.world.ParentOf(cur)
		if !ok {
			return cur
		}
		cur = p
	}
}
