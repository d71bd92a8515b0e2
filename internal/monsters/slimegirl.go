package monsters

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/internal/systems"
	"maw-server/pkg/logger"
)

// Slimegirl нападает на первого игрока в своей комнате.
// Если её саму проглотили - только извивается.
var Slimegirl = Species{
	Tag: "slimegirl",
	Create: func(w *domain.World) (domain.EntityID, error) {
		return NewActor(w,
			ActorParams{Name: "Slimegirl", Health: 400, Attack: 40, Defense: 20},
			OrganSpec{
				Name:   "Belly",
				Params: domain.OrganParams{Health: 200, Attack: 30, Defense: 10, Capacity: 150, Type: domain.OrganGeneric},
			},
		)
	},
	RunAI: slimegirlAI,
}

func slimegirlAI(ctx systems.BehaviorContext) {
	w := ctx.World
	if p, ok := w.ParentOf(ctx.Self); ok && w.Organs.Has(p) {
		ctx.Narrate(fmt.Sprintf("%s squirms inside %s!", w.NameOf(ctx.Self), w.NameOf(p)), domain.LogAI)
		return
	}
	room, ok := w.RoomOf(ctx.Self)
	if !ok {
		return
	}

	for _, target := range actorsInRoom(w, room) {
		if target == ctx.Self || !w.Players.Has(target) {
			continue
		}
		msg, err := systems.ApplyAttack(w, ctx.Self, target)
		if err != nil {
			logger.For("ai_slimegirl").WithError(err).Warn("Slimegirl attack failed")
			return
		}
		ctx.Narrate(msg, domain.LogCombat)
		return
	}
}
