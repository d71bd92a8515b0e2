// Package monsters - реестр видов монстров и фабрика акторов.
//
// Новый вид регистрируется парой функций (создание, поведение) и после этого
// спавнится без дополнительной склейки.
package monsters

import (
	"errors"
	"fmt"
	"sort"

	"maw-server/internal/domain"
	"maw-server/internal/systems"
)

var (
	ErrUnknownSpecies   = errors.New("unknown species")
	ErrDuplicateSpecies = errors.New("species already registered")
)

// CreateFunc строит сущность вида (актор, органы, имя), но не ставит её в комнату
type CreateFunc func(w *domain.World) (domain.EntityID, error)

// Species - описание вида
type Species struct {
	Tag    string
	Create CreateFunc
	RunAI  systems.Behavior
}

// Registry - тег вида -> Species
type Registry struct {
	species map[string]Species
}

func NewRegistry() *Registry {
	return &Registry{species: make(map[string]Species)}
}

// DefaultRegistry возвращает реестр со встроенными видами
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Встроенные виды не конфликтуют, ошибок тут быть не может
	_ = r.Register(Slime)
	_ = r.Register(Slimegirl)
	return r
}

// Register добавляет вид. Повторная регистрация тега - ошибка.
func (r *Registry) Register(s Species) error {
	if s.Tag == "" || s.Create == nil || s.RunAI == nil {
		return fmt.Errorf("register species %q: tag, create and ai are required", s.Tag)
	}
	if _, ok := r.species[s.Tag]; ok {
		return fmt.Errorf("register species %q: %w", s.Tag, ErrDuplicateSpecies)
	}
	r.species[s.Tag] = s
	return nil
}

// Behavior реализует systems.BehaviorSource
func (r *Registry) Behavior(tag string) (systems.Behavior, bool) {
	s, ok := r.species[tag]
	if !ok {
		return nil, false
	}
	return s.RunAI, true
}

// Tags возвращает зарегистрированные теги по алфавиту
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.species))
	for tag := range r.species {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Spawn создаёт монстра вида tag, помещает в room и помечает как управляемого ИИ
func (r *Registry) Spawn(w *domain.World, tag string, room domain.EntityID) (domain.EntityID, error) {
	s, ok := r.species[tag]
	if !ok {
		return domain.NilEntityID, fmt.Errorf("spawn %q: %w", tag, ErrUnknownSpecies)
	}

	id, err := s.Create(w)
	if err != nil {
		return domain.NilEntityID, fmt.Errorf("spawn %q: %w", tag, err)
	}
	if err := w.AI.Add(id, domain.AIBehaviorComponent{Species: tag}); err != nil {
		return domain.NilEntityID, fmt.Errorf("spawn %q: %w", tag, err)
	}
	if !room.IsNil() {
		if err := w.SetParent(id, room); err != nil {
			return domain.NilEntityID, fmt.Errorf("spawn %q into room: %w", tag, err)
		}
	}
	return id, nil
}
