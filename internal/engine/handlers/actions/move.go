package actions

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
)

// HandleMove пока только объявляет намерение: перемещения между комнатами нет.
func HandleMove(ctx handlers.Context, ev domain.Event, _ *domain.ActorComponent) (handlers.Result, error) {
	if !ctx.World.Rooms.Has(ev.Room) {
		return handlers.TargetLost(), nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s wants to move to %s.", ctx.World.NameOf(ev.Actor), ctx.World.NameOf(ev.Room)),
		MsgType: domain.LogInfo,
	}, nil
}
