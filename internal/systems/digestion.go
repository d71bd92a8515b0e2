package systems

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DigestFunc - как орган конкретного типа действует на одну добычу.
// Возвращает строку повествования.
type DigestFunc func(w *domain.World, organID, preyID domain.EntityID, organ *domain.OrganComponent, prey *domain.ActorComponent) string

// digestBehaviors - поведение по типу органа.
// Описано только Generic, остальные типы пока ведут себя так же.
var digestBehaviors = map[domain.OrganType]DigestFunc{
	domain.OrganGeneric: digestGeneric,
}

func digestGeneric(w *domain.World, organID, preyID domain.EntityID, organ *domain.OrganComponent, prey *domain.ActorComponent) string {
	prey.TakeDamage(organ.Attack)
	// TODO: когда добыча переварена целиком - уничтожить её и переложить содержимое её органов
	return fmt.Sprintf("%s digests %s for %d damage!", w.NameOf(organID), w.NameOf(preyID), organ.Attack)
}

func digestFor(t domain.OrganType) DigestFunc {
	if fn, ok := digestBehaviors[t]; ok {
		return fn
	}
	return digestGeneric
}

// Digest - один проход пищеварения: каждый орган действует на каждого
// прямого ребёнка-актора. Дети без ActorComponent пропускаются.
// Возвращает по строке на каждую пару (орган, добыча).
func Digest(w *domain.World) []string {
	var lines []string

	w.Organs.Each(func(organID domain.EntityID, organ *domain.OrganComponent) bool {
		digest := digestFor(organ.Type)
		for _, preyID := range w.ChildrenOf(organID) {
			prey, ok := w.Actors.Get(preyID)
			if !ok {
				continue
			}
			hpBefore := prey.HealthCurrent
			lines = append(lines, digest(w, organID, preyID, organ, prey))

			logger.Log.WithFields(logrus.Fields{
				"component": "digestion_system",
				"organ_id":  organID,
				"prey_id":   preyID,
				"organ":     organ.Type.String(),
				"hp_before": hpBefore,
				"hp_after":  prey.HealthCurrent,
			}).Debug("Prey digested.")
		}
		return true
	})

	return lines
}
