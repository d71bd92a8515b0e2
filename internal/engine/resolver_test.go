package engine

import (
	"errors"
	"testing"

	"maw-server/internal/domain"
	"maw-server/internal/monsters"
)

func TestResolver_Resolve(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.w)

	tests := []struct {
		name    string
		intent  domain.Intent
		want    domain.Event
		wantErr string
	}{
		{
			name:   "attack",
			intent: domain.Intent{Kind: domain.IntentAttack, Target: "Slime"},
			want:   domain.AttackEvent(f.hero, f.slime),
		},
		{
			name:   "devour",
			intent: domain.Intent{Kind: domain.IntentDevour, Target: "Slime", Organ: "Belly"},
			want:   domain.DevourEvent(f.hero, f.slime, f.belly),
		},
		{
			name:   "move",
			intent: domain.Intent{Kind: domain.IntentMoveRoom, Room: "Cave"},
			want:   domain.MoveRoomEvent(f.hero, f.room),
		},
		{
			name:   "struggle",
			intent: domain.Intent{Kind: domain.IntentStruggle},
			want:   domain.StruggleEvent(f.hero),
		},
		{
			name:    "names are case sensitive",
			intent:  domain.Intent{Kind: domain.IntentAttack, Target: "slime"},
			wantErr: `No one named "slime" is here`,
		},
		{
			name:    "organ is not an actor",
			intent:  domain.Intent{Kind: domain.IntentAttack, Target: "Stomach"},
			wantErr: `No one named "Stomach" is here`,
		},
		{
			name:    "room is not an organ",
			intent:  domain.Intent{Kind: domain.IntentDevour, Target: "Slime", Organ: "Cave"},
			wantErr: `You have no organ named "Cave"`,
		},
		{
			name:    "actor is not a room",
			intent:  domain.Intent{Kind: domain.IntentMoveRoom, Room: "Slime"},
			wantErr: `There is no room named "Slime"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(f.hero, tt.intent)
			if tt.wantErr != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message != tt.wantErr {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("event = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolver_DevourHost(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.w)
	mustOK(t, f.w.SetParent(f.hero, f.stomach))

	_, err := r.Resolve(f.hero, domain.Intent{Kind: domain.IntentDevour, Target: "Slime", Organ: "Belly"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != MsgDevourYourHost {
		t.Fatalf("err = %v, want %q", err, MsgDevourYourHost)
	}
	if errors.Is(err, domain.ErrContractViolation) {
		t.Error("player input must not be a contract violation")
	}

	// Слизень держит героя и может проглотить его ещё раз своим желудком
	ev, err := r.Resolve(f.slime, domain.Intent{Kind: domain.IntentDevour, Target: "Hero", Organ: "Stomach"})
	mustOK(t, err)
	if ev != domain.DevourEvent(f.slime, f.hero, f.stomach) {
		t.Errorf("event = %+v", ev)
	}
}

func TestResolver_FirstMatchWins(t *testing.T) {
	f := newFixture(t)
	second, err := monsters.DefaultRegistry().Spawn(f.w, "slime", f.room)
	mustOK(t, err)

	ev, err := NewResolver(f.w).Resolve(f.hero, domain.Intent{Kind: domain.IntentAttack, Target: "Slime"})
	mustOK(t, err)
	if ev.Target != f.slime || ev.Target == second {
		t.Errorf("target = %s, want the first Slime %s", ev.Target, f.slime)
	}
}

func TestResolver_RoomScope(t *testing.T) {
	f := newFixture(t)
	attic := f.w.Spawn()
	mustOK(t, f.w.SetName(attic, "Attic"))
	mustOK(t, f.w.Rooms.Add(attic, domain.RoomComponent{}))
	mustOK(t, f.w.SetParent(f.slime, attic))

	r := NewResolver(f.w)
	_, err := r.Resolve(f.hero, domain.Intent{Kind: domain.IntentAttack, Target: "Slime"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("slime in another room must not resolve, err = %v", err)
	}

	// Комнату можно назвать из любой другой комнаты
	ev, err := r.Resolve(f.hero, domain.Intent{Kind: domain.IntentMoveRoom, Room: "Attic"})
	mustOK(t, err)
	if ev.Room != attic {
		t.Errorf("room = %s, want %s", ev.Room, attic)
	}
}

func TestResolver_NoRoomUsesContainmentRoot(t *testing.T) {
	w := domain.NewWorld()
	slime, err := monsters.DefaultRegistry().Spawn(w, "slime", domain.NilEntityID)
	mustOK(t, err)
	hero, err := monsters.CreatePlayer(w, monsters.PlayerParams{
		ID:    heroID,
		Actor: monsters.ActorParams{Name: "Hero", Health: 500, Attack: 30},
	}, domain.NilEntityID)
	mustOK(t, err)
	mustOK(t, w.SetParent(hero, w.ChildrenOf(slime)[0]))

	ev, err := NewResolver(w).Resolve(hero, domain.Intent{Kind: domain.IntentAttack, Target: "Slime"})
	mustOK(t, err)
	if ev.Target != slime {
		t.Errorf("target = %s, want %s", ev.Target, slime)
	}
}

func TestResolver_NotAnActor(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.w)

	_, err := r.Resolve(f.room, domain.Intent{Kind: domain.IntentStruggle})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != MsgNotAnActor {
		t.Errorf("err = %v", err)
	}

	if _, err := r.Resolve(f.hero, domain.Intent{Kind: domain.IntentUnknown}); !errors.Is(err, domain.ErrContractViolation) {
		t.Errorf("unknown intent: err = %v", err)
	}
}

func TestResolver_PlayerEntity(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.w)

	id, ok := r.PlayerEntity(heroID)
	if !ok || id != f.hero {
		t.Errorf("PlayerEntity = %s,%v", id, ok)
	}
	if _, ok := r.PlayerEntity(42); ok {
		t.Error("unknown player should not resolve")
	}
}
