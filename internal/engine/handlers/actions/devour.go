package actions

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandleDevour кладёт добычу в орган хищника.
// Предыдущий родитель добычи (комната или другой орган) теряет её в том же вызове.
func HandleDevour(ctx handlers.Context, ev domain.Event, _ *domain.ActorComponent) (handlers.Result, error) {
	w := ctx.World

	// 1. Орган и добыча всё ещё на месте?
	if !w.Organs.Has(ev.Organ) || !w.IsAlive(ev.Target) {
		return handlers.TargetLost(), nil
	}

	// 2. Перенос. Цикл (проглотить своего хозяина) - нарушение контракта.
	if err := w.SetParent(ev.Target, ev.Organ); err != nil {
		return handlers.EmptyResult(), fmt.Errorf("devour: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "devour_handler",
		"predator":  ev.Actor,
		"prey":      ev.Target,
		"organ":     ev.Organ,
	}).Info("Prey devoured.")

	return handlers.Result{
		Msg:     fmt.Sprintf("%s devours %s with their %s!", w.NameOf(ev.Actor), w.NameOf(ev.Target), w.NameOf(ev.Organ)),
		MsgType: domain.LogCombat,
	}, nil
}
