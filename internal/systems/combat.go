package systems

import (
	"errors"
	"fmt"

	"maw-server/internal/domain"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrNotAnActor - у одной из сторон больше нет ActorComponent
// (сущность уничтожена или изменилась между проверкой и исполнением)
var ErrNotAnActor = errors.New("entity is not an actor")

// ApplyAttack наносит цели урон, равный атаке нападающего.
// Защита цели не учитывается. Возвращает строку для повествования.
func ApplyAttack(w *domain.World, attackerID, targetID domain.EntityID) (string, error) {
	attacker, ok := w.Actors.Get(attackerID)
	if !ok {
		return "", fmt.Errorf("attacker %s: %w", attackerID, ErrNotAnActor)
	}
	target, ok := w.Actors.Get(targetID)
	if !ok {
		return "", fmt.Errorf("target %s: %w", targetID, ErrNotAnActor)
	}

	attackerName := w.NameOf(attackerID)
	targetName := w.NameOf(targetID)
	damage := attacker.Attack

	hpBefore := target.HealthCurrent
	target.TakeDamage(damage)

	logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attackerID,
		"attacker_name": attackerName,
		"target_id":     targetID,
		"target_name":   targetName,
		"damage":        damage,
		"hp_before":     hpBefore,
		"hp_after":      target.HealthCurrent,
	}).Info("Attack resolved.")

	// TODO: при HealthCurrent <= 0 уничтожать цель и выпускать всё содержимое её органов
	return fmt.Sprintf("%s attacks %s, dealing %d damage!", attackerName, targetName, damage), nil
}
