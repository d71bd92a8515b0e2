package actions

import (
	"errors"

	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
	"maw-server/internal/systems"
)

// HandleAttack наносит цели урон, равный атаке нападающего
func HandleAttack(ctx handlers.Context, ev domain.Event, _ *domain.ActorComponent) (handlers.Result, error) {
	// 1. Вызов Системы Боя (она же проверяет, что цель всё ещё актор)
	logMsg, err := systems.ApplyAttack(ctx.World, ev.Actor, ev.Target)
	if errors.Is(err, systems.ErrNotAnActor) {
		return handlers.TargetLost(), nil
	}
	if err != nil {
		return handlers.EmptyResult(), err
	}

	return handlers.Result{
		Msg:     logMsg,
		MsgType: domain.LogCombat,
	}, nil
}
