package engine

import (
	"errors"
	"testing"

	"maw-server/internal/domain"
	"maw-server/internal/monsters"
	"maw-server/internal/worldfile"
)

func TestBuildWorld_Default(t *testing.T) {
	w, err := BuildWorld(worldfile.Default(), monsters.DefaultRegistry())
	mustOK(t, err)

	if w.Rooms.Len() != 1 || w.Actors.Len() != 3 || w.AI.Len() != 2 {
		t.Fatalf("rooms=%d actors=%d ai=%d", w.Rooms.Len(), w.Actors.Len(), w.AI.Len())
	}

	r := NewResolver(w)
	hero, ok := r.PlayerEntity(1)
	if !ok {
		t.Fatal("default world must contain player 1")
	}
	if w.NameOf(hero) != "Hero" {
		t.Errorf("player name = %q", w.NameOf(hero))
	}

	// Все видят друг друга: одна комната
	for _, name := range []string{"Slime", "Slimegirl"} {
		if _, err := r.Resolve(hero, domain.Intent{Kind: domain.IntentAttack, Target: name}); err != nil {
			t.Errorf("%s not visible from hero: %v", name, err)
		}
	}
	if _, err := r.Resolve(hero, domain.Intent{Kind: domain.IntentDevour, Target: "Slime", Organ: "Stomach"}); err != nil {
		t.Errorf("hero should own a Stomach: %v", err)
	}
}

func TestBuildWorld_FromDefinition(t *testing.T) {
	def := worldfile.Definition{
		Name: "test",
		Rooms: []worldfile.Room{
			{Name: "Pit", Monsters: []worldfile.Monster{{Species: "slime", Count: 3}}},
			{Name: "Hall", Players: []worldfile.Player{{
				ID: 5, Name: "Ann", Health: 100, Attack: 7,
				Organs: []worldfile.Organ{{Name: "Womb", Attack: 3, Type: "womb"}},
			}}},
		},
	}
	w, err := BuildWorld(def, monsters.DefaultRegistry())
	mustOK(t, err)

	if w.AI.Len() != 3 {
		t.Errorf("slimes = %d, want 3", w.AI.Len())
	}

	ann, ok := NewResolver(w).PlayerEntity(5)
	if !ok {
		t.Fatal("player 5 missing")
	}
	womb := w.ChildrenOf(ann)[0]
	organ, _ := w.Organs.Get(womb)
	if organ.Type != domain.OrganWomb || organ.Attack != 3 || organ.HealthMax != domain.DefaultOrgan().HealthMax {
		t.Errorf("organ = %+v", organ)
	}
}

func TestBuildWorld_UnknownSpecies(t *testing.T) {
	def := worldfile.Definition{
		Name:  "bad",
		Rooms: []worldfile.Room{{Name: "Pit", Monsters: []worldfile.Monster{{Species: "dragon"}}}},
	}
	if _, err := BuildWorld(def, monsters.DefaultRegistry()); !errors.Is(err, monsters.ErrUnknownSpecies) {
		t.Errorf("err = %v, want ErrUnknownSpecies", err)
	}
}
