package systems

import (
	"maw-server/internal/domain"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// BehaviorContext передаётся поведению монстра.
// На время вызова поведение единолично владеет миром и может менять любые сущности.
type BehaviorContext struct {
	World   *domain.World
	Self    domain.EntityID
	Narrate func(text string, typ domain.LogType)
}

// Behavior - поведение вида монстров. Без собственного состояния:
// всё нужное хранится в компонентах мира.
type Behavior func(ctx BehaviorContext)

// BehaviorSource находит поведение по тегу вида
type BehaviorSource interface {
	Behavior(species string) (Behavior, bool)
}

// RunAI вызывает поведение каждой сущности с AIBehaviorComponent.
// Список берётся заранее: если поведение снимет компонент с соседа,
// тот в этом проходе уже не будет вызван.
// Возвращает число вызванных поведений.
func RunAI(w *domain.World, src BehaviorSource, narrate func(string, domain.LogType)) int {
	invoked := 0
	for _, id := range w.AI.IDs() {
		comp, ok := w.AI.Get(id)
		if !ok {
			continue
		}

		behavior, ok := src.Behavior(comp.Species)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"component": "ai_system",
				"entity_id": id,
				"species":   comp.Species,
			}).Warn("No behavior registered for species, skipping.")
			continue
		}

		behavior(BehaviorContext{World: w, Self: id, Narrate: narrate})
		invoked++
	}
	return invoked
}
