package actions

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
)

// HandleStruggle - только повествование, состояние мира не меняется
func HandleStruggle(ctx handlers.Context, ev domain.Event, _ *domain.ActorComponent) (handlers.Result, error) {
	return handlers.Result{
		Msg:     fmt.Sprintf("%s struggles!", ctx.World.NameOf(ev.Actor)),
		MsgType: domain.LogInfo,
	}, nil
}
