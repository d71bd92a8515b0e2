package domain

import (
	"errors"
	"fmt"
)

// Нарушения контракта хранилища. Это ошибки программиста, а не игрока.
var (
	ErrContractViolation = errors.New("world contract violation")
	ErrEntityNotFound    = fmt.Errorf("%w: entity not found", ErrContractViolation)
	ErrContainmentCycle  = fmt.Errorf("%w: containment cycle", ErrContractViolation)
)

// World - хранилище сущностей и компонентов плюс иерархия вложенности.
//
// World не потокобезопасен: им владеет только игровой цикл, все изменения
// происходят внутри одного тика.
type World struct {
	generations []uint32 // Поколение для каждого слота
	alive       []bool
	free        []uint32

	// Хранилища компонентов (публичные, для прямого доступа систем)
	Actors  *Store[ActorComponent]
	Organs  *Store[OrganComponent]
	Names   *Store[NameComponent]
	Rooms   *Store[RoomComponent]
	AI      *Store[AIBehaviorComponent]
	Players *Store[PlayerComponent]

	allStores []anyStore

	// Иерархия: ребёнок -> родитель, родитель -> дети (в порядке вставки)
	parent   map[EntityID]EntityID
	children map[EntityID][]EntityID
}

// NewWorld создаёт пустой мир со всеми хранилищами
func NewWorld() *World {
	w := &World{
		// Слот 0 зарезервирован под NilEntityID
		generations: []uint32{0},
		alive:       []bool{false},
		parent:      make(map[EntityID]EntityID),
		children:    make(map[EntityID][]EntityID),
	}

	w.Actors = newStore[ActorComponent](w)
	w.Organs = newStore[OrganComponent](w)
	w.Names = newStore[NameComponent](w)
	w.Rooms = newStore[RoomComponent](w)
	w.AI = newStore[AIBehaviorComponent](w)
	w.Players = newStore[PlayerComponent](w)

	w.allStores = []anyStore{w.Actors, w.Organs, w.Names, w.Rooms, w.AI, w.Players}
	return w
}

// Spawn создаёт новую пустую сущность
func (w *World) Spawn() EntityID {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		w.alive[idx] = true
		return PackEntityID(w.generations[idx], idx)
	}

	idx := uint32(len(w.generations))
	w.generations = append(w.generations, 0)
	w.alive = append(w.alive, true)
	return PackEntityID(0, idx)
}

// IsAlive проверяет, что id указывает на существующую сущность текущего поколения
func (w *World) IsAlive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || int(idx) >= len(w.alive) {
		return false
	}
	return w.alive[idx] && w.generations[idx] == id.Generation()
}

// Despawn уничтожает сущность: снимает все компоненты, отцепляет от родителя,
// а детей оставляет без родителя (сами дети живут дальше).
// Игровая логика пока Despawn не вызывает.
func (w *World) Despawn(id EntityID) error {
	if !w.IsAlive(id) {
		return fmt.Errorf("despawn %s: %w", id, ErrEntityNotFound)
	}

	for _, store := range w.allStores {
		store.Remove(id)
	}

	w.detach(id)
	for _, child := range w.children[id] {
		delete(w.parent, child)
	}
	delete(w.children, id)

	idx := id.Index()
	w.alive[idx] = false
	w.generations[idx]++
	w.free = append(w.free, idx)
	return nil
}

// EntityCount возвращает количество живых сущностей
func (w *World) EntityCount() int {
	count := 0
	for _, a := range w.alive {
		if a {
			count++
		}
	}
	return count
}

// NameOf возвращает отображаемое имя сущности или её id, если имени нет
func (w *World) NameOf(id EntityID) string {
	if n, ok := w.Names.Get(id); ok {
		return n.Value
	}
	return id.String()
}

// SetName - короткий путь для Names.Add
func (w *World) SetName(id EntityID, name string) error {
	return w.Names.Add(id, NameComponent{Value: name})
}

// FindNamed ищет первую сущность с именем name среди кандидатов.
// Порядок кандидатов определяет победителя при дублях.
func (w *World) FindNamed(name string, candidates []EntityID, accept func(EntityID) bool) (EntityID, bool) {
	for _, id := range candidates {
		n, ok := w.Names.Get(id)
		if !ok || n.Value != name {
			continue
		}
		if accept != nil && !accept(id) {
			continue
		}
		return id, true
	}
	return NilEntityID, false
}
