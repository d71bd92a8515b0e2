package engine

import (
	"fmt"

	"maw-server/internal/domain"
	"maw-server/internal/monsters"
	"maw-server/internal/worldfile"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// BuildWorld создает все комнаты, монстров и игроков из описания мира.
// Порядок создания повторяет порядок в файле: от него зависит,
// кто победит при одинаковых именах.
func BuildWorld(def worldfile.Definition, reg *monsters.Registry) (*domain.World, error) {
	w := domain.NewWorld()

	for _, r := range def.Rooms {
		// 1. Комната
		room := w.Spawn()
		if err := w.SetName(room, r.Name); err != nil {
			return nil, err
		}
		if err := w.Rooms.Add(room, domain.RoomComponent{}); err != nil {
			return nil, err
		}

		// 2. Монстры
		for _, m := range r.Monsters {
			count := m.Count
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				if _, err := reg.Spawn(w, m.Species, room); err != nil {
					return nil, fmt.Errorf("room %q: %w", r.Name, err)
				}
			}
		}

		// 3. Игроки
		for _, p := range r.Players {
			if _, err := monsters.CreatePlayer(w, playerParams(p), room); err != nil {
				return nil, fmt.Errorf("room %q: %w", r.Name, err)
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"world":     def.Name,
		"rooms":     w.Rooms.Len(),
		"actors":    w.Actors.Len(),
		"entities":  w.EntityCount(),
	}).Info("World built.")

	return w, nil
}

func playerParams(p worldfile.Player) monsters.PlayerParams {
	params := monsters.PlayerParams{
		ID: domain.PlayerID(p.ID),
		Actor: monsters.ActorParams{
			Name:    p.Name,
			Health:  p.Health,
			Attack:  p.Attack,
			Defense: p.Defense,
		},
	}
	if len(p.Organs) == 0 {
		params.Organs = monsters.DefaultPlayerOrgans()
		return params
	}

	def := domain.DefaultOrgan()
	for _, o := range p.Organs {
		typ, _ := domain.ParseOrganType(o.Type)
		params.Organs = append(params.Organs, monsters.OrganSpec{
			Name: o.Name,
			Params: domain.OrganParams{
				Health:   orDefault(o.Health, def.HealthMax),
				Attack:   orDefault(o.Attack, def.Attack),
				Defense:  orDefault(o.Defense, def.Defense),
				Capacity: orDefault(o.Capacity, def.Capacity),
				Type:     typ,
			},
		})
	}
	return params
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
