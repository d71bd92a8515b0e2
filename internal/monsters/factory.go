package monsters

import (
	"fmt"

	"maw-server/internal/domain"
)

// ActorParams - параметры актора для фабрики
type ActorParams struct {
	Name    string
	Health  int
	Attack  int
	Defense int
}

// OrganSpec - орган с именем
type OrganSpec struct {
	Name   string
	Params domain.OrganParams
}

// NewActor создаёт именованного актора с органами. Органы становятся детьми актора.
func NewActor(w *domain.World, p ActorParams, organs ...OrganSpec) (domain.EntityID, error) {
	id := w.Spawn()
	if err := w.SetName(id, p.Name); err != nil {
		return domain.NilEntityID, err
	}
	if err := w.Actors.Add(id, domain.NewActor(p.Health, p.Attack, p.Defense)); err != nil {
		return domain.NilEntityID, err
	}
	for _, o := range organs {
		if _, err := AttachOrgan(w, id, o); err != nil {
			return domain.NilEntityID, err
		}
	}
	return id, nil
}

// AttachOrgan создаёт орган и вешает его на владельца
func AttachOrgan(w *domain.World, owner domain.EntityID, spec OrganSpec) (domain.EntityID, error) {
	organ := w.Spawn()
	if err := w.SetName(organ, spec.Name); err != nil {
		return domain.NilEntityID, err
	}
	if err := w.Organs.Add(organ, domain.NewOrgan(spec.Params)); err != nil {
		return domain.NilEntityID, err
	}
	if err := w.SetParent(organ, owner); err != nil {
		return domain.NilEntityID, fmt.Errorf("attach organ %q: %w", spec.Name, err)
	}
	return organ, nil
}

// PlayerParams - параметры персонажа игрока
type PlayerParams struct {
	ID     domain.PlayerID
	Actor  ActorParams
	Organs []OrganSpec
}

// DefaultPlayerOrgans - органы нового игрока, если не заданы явно
func DefaultPlayerOrgans() []OrganSpec {
	return []OrganSpec{{
		Name:   "Stomach",
		Params: domain.OrganParams{Health: 500, Attack: 15, Defense: 10, Capacity: 100, Type: domain.OrganGeneric},
	}}
}

// CreatePlayer создаёт персонажа игрока и помещает его в комнату
func CreatePlayer(w *domain.World, p PlayerParams, room domain.EntityID) (domain.EntityID, error) {
	id, err := NewActor(w, p.Actor, p.Organs...)
	if err != nil {
		return domain.NilEntityID, fmt.Errorf("create player %q: %w", p.Actor.Name, err)
	}
	if err := w.Players.Add(id, domain.PlayerComponent{ID: p.ID}); err != nil {
		return domain.NilEntityID, err
	}
	if !room.IsNil() {
		if err := w.SetParent(id, room); err != nil {
			return domain.NilEntityID, fmt.Errorf("create player %q: %w", p.Actor.Name, err)
		}
	}
	return id, nil
}

// actorsInRoom - акторы, находящиеся (в том числе внутри органов) в комнате room
func actorsInRoom(w *domain.World, room domain.EntityID) []domain.EntityID {
	var out []domain.EntityID
	for _, id := range w.Actors.IDs() {
		if r, ok := w.RoomOf(id); ok && r == room {
			out = append(out, id)
		}
	}
	return out
}

// firstOrgan - первый орган сущности
func firstOrgan(w *domain.World, owner domain.EntityID) (domain.EntityID, bool) {
	for _, c := range w.ChildrenOf(owner) {
		if w.Organs.Has(c) {
			return c, true
		}
	}
	return domain.NilEntityID, false
}

// isContained - сущность сейчас внутри какого-то органа
func isContained(w *domain.World, id domain.EntityID) bool {
	p, ok := w.ParentOf(id)
	return ok && w.Organs.Has(p)
}
