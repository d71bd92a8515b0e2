package domain

import "fmt"

// Иерархия вложенности: у каждой сущности не больше одного родителя,
// граф - лес (сущность не может быть собственным предком).

// SetParent делает parent новым родителем child.
// Старая связь снимается и новая ставится в одном вызове, промежуточного
// состояния с нулём или двумя родителями снаружи не видно.
// Если связь создала бы цикл, граф не меняется и возвращается ErrContainmentCycle.
func (w *World) SetParent(child, parent EntityID) error {
	if !w.IsAlive(child) {
		return fmt.Errorf("set parent of %s: %w", child, ErrEntityNotFound)
	}
	if !w.IsAlive(parent) {
		return fmt.Errorf("set parent %s: %w", parent, ErrEntityNotFound)
	}
	if child == parent || w.IsAncestor(child, parent) {
		return fmt.Errorf("put %s inside %s: %w", child, parent, ErrContainmentCycle)
	}

	if old, ok := w.parent[child]; ok && old == parent {
		return nil
	}

	w.detach(child)
	w.parent[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// RemoveParent делает сущность корнем. Отсутствие родителя - не ошибка.
func (w *World) RemoveParent(child EntityID) error {
	if !w.IsAlive(child) {
		return fmt.Errorf("remove parent of %s: %w", child, ErrEntityNotFound)
	}
	w.detach(child)
	return nil
}

// detach снимает ребро child -> parent, если оно есть
func (w *World) detach(child EntityID) {
	old, ok := w.parent[child]
	if !ok {
		return
	}
	delete(w.parent, child)

	siblings := w.children[old]
	for i, s := range siblings {
		if s == child {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(w.children, old)
	} else {
		w.children[old] = siblings
	}
}

// ParentOf возвращает родителя сущности
func (w *World) ParentOf(id EntityID) (EntityID, bool) {
	p, ok := w.parent[id]
	return p, ok
}

// ChildrenOf возвращает копию списка прямых детей в порядке вставки
func (w *World) ChildrenOf(id EntityID) []EntityID {
	kids := w.children[id]
	out := make([]EntityID, len(kids))
	copy(out, kids)
	return out
}

// IsAncestor сообщает, является ли ancestor предком id (строго выше по цепочке)
func (w *World) IsAncestor(ancestor, id EntityID) bool {
	// Ограничитель глубины: при соблюдённом инварианте не срабатывает
	limit := len(w.generations)
	cur := id
	for i := 0; i < limit; i++ {
		p, ok := w.parent[cur]
		if !ok {
			return false
		}
		if p == ancestor {
			return true
		}
		cur = p
	}
	return false
}

// RoomOf возвращает ближайшую комнату, в которой находится сущность
// (саму сущность, если она и есть комната).
func (w *World) RoomOf(id EntityID) (EntityID, bool) {
	limit := len(w.generations)
	cur := id
	for i := 0; i <= limit; i++ {
		if w.Rooms.Has(cur) {
			return cur, true
		}
		p, ok := w.parent[cur]
		if !ok {
			return NilEntityID, false
		}
		cur = p
	}
	return NilEntityID, false
}

// Descendants обходит всех потомков в глубину (прямые дети раньше внуков своей ветки)
func (w *World) Descendants(id EntityID) []EntityID {
	var out []EntityID
	var walk func(EntityID)
	walk = func(cur EntityID) {
		for _, c := range w.children[cur] {
			out = append(out, c)
			walk(c)
		}
	}
	walk(id)
	return out
}
