package monsters

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/internal/systems"
	"maw-server/pkg/logger"
)

// Slime - медленный слизень. Раз в период ИИ заглатывает первого
// свободного не-монстра в своей комнате.
var Slime = Species{
	Tag: "slime",
	Create: func(w *domain.World) (domain.EntityID, error) {
		return NewActor(w,
			ActorParams{Name: "Slime", Health: 300, Attack: 50, Defense: 10},
			OrganSpec{
				Name:   "Stomach",
				Params: domain.OrganParams{Health: 100, Attack: 20, Defense: 0, Capacity: 100, Type: domain.OrganGeneric},
			},
		)
	},
	RunAI: slimeAI,
}

func slimeAI(ctx systems.BehaviorContext) {
	w := ctx.World
	if isContained(w, ctx.Self) {
		return
	}
	stomach, ok := firstOrgan(w, ctx.Self)
	if !ok {
		return
	}
	room, ok := w.RoomOf(ctx.Self)
	if !ok {
		return
	}

	for _, prey := range actorsInRoom(w, room) {
		if prey == ctx.Self || w.AI.Has(prey) || isContained(w, prey) || w.IsAncestor(prey, ctx.Self) {
			continue
		}
		if err := w.SetParent(prey, stomach); err != nil {
			logger.For("ai_slime").WithError(err).Warn("Slime failed to engulf prey")
			return
		}
		ctx.Narrate(fmt.Sprintf("%s engulfs %s into its %s!", w.NameOf(ctx.Self), w.NameOf(prey), w.NameOf(stomach)), domain.LogAI)
		return
	}
}
