package domain

import "fmt"

// anyStore - общий интерфейс всех хранилищ компонентов.
// Нужен World, чтобы при Despawn вычистить сущность из всех хранилищ разом.
type anyStore interface {
	Has(id EntityID) bool
	Remove(id EntityID)
	Len() int
}

// Store - разреженное хранилище компонентов одного типа.
//
// Порядок обхода (IDs, Each) совпадает с порядком добавления компонентов:
// на нём держится правило "первое совпадение по имени".
// Указатель из Get остаётся валидным, пока компонент не удалён.
type Store[T any] struct {
	world *World
	items map[EntityID]*T
	order []EntityID
}

func newStore[T any](w *World) *Store[T] {
	return &Store[T]{
		world: w,
		items: make(map[EntityID]*T),
	}
}

// Add прикрепляет компонент к сущности (или заменяет существующий).
// Для несуществующей сущности возвращает ErrEntityNotFound.
func (s *Store[T]) Add(id EntityID, value T) error {
	if !s.world.IsAlive(id) {
		return fmt.Errorf("attach component to %s: %w", id, ErrEntityNotFound)
	}
	if existing, ok := s.items[id]; ok {
		*existing = value
		return nil
	}
	v := value
	s.items[id] = &v
	s.order = append(s.order, id)
	return nil
}

// Get возвращает компонент сущности, если он есть
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	v, ok := s.items[id]
	return v, ok
}

// Has проверяет наличие компонента
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.items[id]
	return ok
}

// Remove открепляет компонент. Отсутствие компонента - не ошибка.
func (s *Store[T]) Remove(id EntityID) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	// Удаляем с сохранением порядка
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len возвращает количество компонентов
func (s *Store[T]) Len() int {
	return len(s.order)
}

// IDs возвращает копию списка владельцев в порядке добавления
func (s *Store[T]) IDs() []EntityID {
	out := make([]EntityID, len(s.order))
	copy(out, s.order)
	return out
}

// Each обходит компоненты в порядке добавления. fn возвращает false, чтобы остановиться.
// Внутри fn можно менять значения компонентов, но не состав хранилища.
func (s *Store[T]) Each(fn func(id EntityID, value *T) bool) {
	for _, id := range s.order {
		if !fn(id, s.items[id]) {
			return
		}
	}
}
