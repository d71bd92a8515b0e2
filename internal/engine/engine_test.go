package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers"
)

func TestEngine_DigestionScenario(t *testing.T) {
	f := newFixture(t)
	mustOK(t, f.w.SetParent(f.hero, f.stomach))
	e, sink := f.engine(testConfig())
	ctx := context.Background()

	// Меньше периода - ничего
	e.Update(ctx, 29*time.Second)
	if f.health(f.hero) != 500 {
		t.Fatalf("digestion fired early, HP = %d", f.health(f.hero))
	}

	e.Update(ctx, time.Second)
	if f.health(f.hero) != 480 {
		t.Errorf("hero HP = %d, want 480", f.health(f.hero))
	}
	texts := sink.texts()
	if len(texts) != 1 || texts[0] != "Stomach digests Hero for 20 damage!" {
		t.Errorf("narration = %v", texts)
	}
	if entry := sink.all()[0]; entry.Private || entry.Type != domain.LogDigest || entry.Tick != 2 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestEngine_DigestionCatchUp(t *testing.T) {
	f := newFixture(t)
	mustOK(t, f.w.SetParent(f.hero, f.stomach))
	e, _ := f.engine(testConfig())

	// 65 при периоде 30: два срабатывания, остаток 5
	e.Update(context.Background(), 65*time.Second)
	if f.health(f.hero) != 460 {
		t.Errorf("hero HP = %d, want 460", f.health(f.hero))
	}
	e.Update(context.Background(), 25*time.Second)
	if f.health(f.hero) != 440 {
		t.Errorf("remainder lost: hero HP = %d, want 440", f.health(f.hero))
	}
}

func TestEngine_AttackFromInsideStomach(t *testing.T) {
	f := newFixture(t)
	mustOK(t, f.w.SetParent(f.hero, f.stomach))
	e, sink := f.engine(testConfig())

	mustOK(t, e.Submit(domain.PlayerInput(heroID, "attack Slime")))
	e.Update(context.Background(), time.Millisecond)

	if f.health(f.slime) != 270 {
		t.Errorf("slime HP = %d, want 270", f.health(f.slime))
	}
	entries := sink.all()
	if len(entries) != 1 || entries[0].Text != "Hero attacks Slime, dealing 30 damage!" || entries[0].Private {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEngine_RejectedCommandsArePrivate(t *testing.T) {
	tests := []struct {
		name   string
		player domain.PlayerID
		text   string
		want   string
	}{
		{"parse error", heroID, "fly", "Unknown action"},
		{"missing target", heroID, "attack", "Missing target for attack"},
		{"unknown name", heroID, "attack Goblin", `No one named "Goblin" is here`},
		{"foreign organ", heroID, "devour Slime with Stomach", `You have no organ named "Stomach"`},
		{"self devour", heroID, "devour Hero with Belly", "You cannot devour yourself"},
		{"unknown room", heroID, "moveto Attic", `There is no room named "Attic"`},
		{"unknown player", 99, "struggle", "You are not in this world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			e, sink := f.engine(testConfig())

			mustOK(t, e.Submit(domain.PlayerInput(tt.player, tt.text)))
			e.Update(context.Background(), time.Millisecond)

			entries := sink.all()
			if len(entries) != 1 {
				t.Fatalf("want exactly one message, got %+v", entries)
			}
			got := entries[0]
			if got.Text != tt.want || !got.Private || got.Recipient != tt.player {
				t.Errorf("entry = %+v, want private %q to %d", got, tt.want, tt.player)
			}
			if got.VisibleTo(tt.player + 1) {
				t.Error("private message must not be visible to other players")
			}
			if f.health(f.slime) != 300 || f.health(f.hero) != 500 {
				t.Error("rejected command changed the world")
			}
		})
	}
}

func TestEngine_DevourAndNarration(t *testing.T) {
	f := newFixture(t)
	e, sink := f.engine(testConfig())

	mustOK(t, e.Submit(domain.PlayerInput(heroID, "devour Slime using Belly")))
	mustOK(t, e.Submit(domain.PlayerInput(heroID, "struggle")))
	mustOK(t, e.Submit(domain.PlayerInput(heroID, "moveto Cave")))
	e.Update(context.Background(), time.Millisecond)

	if p, _ := f.w.ParentOf(f.slime); p != f.belly {
		t.Error("slime should be inside Belly")
	}
	// Порядок: типы в порядке регистрации (ATTACK, DEVOUR, MOVE_ROOM, STRUGGLE)
	want := []string{
		"Hero devours Slime with their Belly!",
		"Hero wants to move to Cave.",
		"Hero struggles!",
	}
	got := sink.texts()
	if len(got) != len(want) {
		t.Fatalf("narration = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEngine_DevourHostIsRejected(t *testing.T) {
	// Герой внутри слизня пытается проглотить самого слизня
	f := newFixture(t)
	mustOK(t, f.w.SetParent(f.hero, f.stomach))
	cfg := testConfig()
	cfg.Strict = true
	e, sink := f.engine(cfg)
	mustOK(t, e.Submit(domain.PlayerInput(heroID, "devour Slime with Belly")))

	e.Update(context.Background(), time.Millisecond)

	entries := sink.all()
	if len(entries) != 1 || entries[0].Text != MsgDevourYourHost || !entries[0].Private || entries[0].Recipient != heroID {
		t.Errorf("entries = %+v", entries)
	}
	if p, _ := f.w.ParentOf(f.slime); p != f.room {
		t.Error("world must stay unchanged")
	}
}

func TestEngine_ContractViolation(t *testing.T) {
	// Событие в обход проверки имён: цикл вложенности ловит только мир
	setup := func(t *testing.T, strict bool) (fixture, *Engine, *collectSink) {
		f := newFixture(t)
		mustOK(t, f.w.SetParent(f.hero, f.stomach))
		cfg := testConfig()
		cfg.Strict = strict
		e, sink := f.engine(cfg)
		e.dispatcher.Enqueue(domain.DevourEvent(f.hero, f.slime, f.belly))
		return f, e, sink
	}

	t.Run("lenient", func(t *testing.T) {
		f, e, sink := setup(t, false)
		e.Update(context.Background(), time.Millisecond)

		entries := sink.all()
		if len(entries) != 1 || entries[0].Text != MsgCannotBeDone || !entries[0].Private {
			t.Errorf("entries = %+v", entries)
		}
		if p, _ := f.w.ParentOf(f.slime); p != f.room {
			t.Error("world must stay unchanged")
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, e, _ := setup(t, true)
		defer func() {
			if recover() == nil {
				t.Error("strict mode must panic on a contract violation")
			}
		}()
		e.Update(context.Background(), time.Millisecond)
	})
}

func TestEngine_TargetLostIsPrivate(t *testing.T) {
	f := newFixture(t)
	e, sink := f.engine(testConfig())

	// Событие прошло проверку, но цель потеряла компонент до исполнения
	ev, err := e.resolver.Resolve(f.hero, domain.Intent{Kind: domain.IntentAttack, Target: "Slime"})
	mustOK(t, err)
	e.dispatcher.Enqueue(ev)
	f.w.Actors.Remove(f.slime)
	e.Update(context.Background(), time.Millisecond)

	entries := sink.all()
	if len(entries) != 1 || entries[0].Text != handlers.TargetLostMsg || entries[0].Recipient != heroID {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEngine_Quit(t *testing.T) {
	f := newFixture(t)
	e, sink := f.engine(testConfig())

	mustOK(t, e.Submit(domain.PlayerInput(heroID, "struggle")))
	mustOK(t, e.Submit(domain.QuitCommand()))
	mustOK(t, e.Submit(domain.PlayerInput(heroID, "attack Slime")))

	if e.Update(context.Background(), time.Millisecond) {
		t.Fatal("Update should report stop after Quit")
	}
	if !e.Stopped() {
		t.Error("engine should be stopped")
	}
	if texts := sink.texts(); len(texts) != 1 || texts[0] != "Hero struggles!" {
		t.Errorf("narration = %v", texts)
	}
	if f.health(f.slime) != 300 {
		t.Error("command after Quit must be dropped")
	}
	if e.Update(context.Background(), time.Millisecond) {
		t.Error("stopped engine must not tick")
	}
}

func TestEngine_InboxFull(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.InboxSize = 1
	e, _ := f.engine(cfg)

	mustOK(t, e.Submit(domain.PlayerInput(heroID, "struggle")))
	if err := e.Submit(domain.PlayerInput(heroID, "struggle")); !errors.Is(err, ErrInboxFull) {
		t.Errorf("err = %v, want ErrInboxFull", err)
	}
}

func TestEngine_AITimer(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.AIPeriod = 10 * time.Second
	e, sink := f.engine(cfg)

	e.Update(context.Background(), 10*time.Second)

	if p, _ := f.w.ParentOf(f.hero); p != f.stomach {
		t.Error("slime AI should engulf the hero")
	}
	if texts := sink.texts(); len(texts) != 1 || texts[0] != "Slime engulfs Hero into its Stomach!" {
		t.Errorf("narration = %v", texts)
	}
}

func TestEngine_LogIDsAreSequential(t *testing.T) {
	f := newFixture(t)
	e, sink := f.engine(testConfig())

	mustOK(t, e.Submit(domain.PlayerInput(heroID, "struggle")))
	mustOK(t, e.Submit(domain.PlayerInput(heroID, "fly")))
	e.Update(context.Background(), time.Millisecond)

	entries := sink.all()
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].ID == entries[1].ID {
		t.Error("log ids must be unique")
	}
	if len(sink.batches) != 1 {
		t.Errorf("one batch per tick expected, got %d", len(sink.batches))
	}
}

func TestEngine_Run(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		f := newFixture(t)
		e, _ := f.engine(testConfig())
		mustOK(t, e.Submit(domain.QuitCommand()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Run(ctx); err != nil {
			t.Errorf("Run = %v, want nil after Quit", err)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		f := newFixture(t)
		e, _ := f.engine(testConfig())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	})
}

type recorded struct {
	delta time.Duration
	cmds  []domain.Command
}

type memRecorder struct{ ticks []recorded }

func (r *memRecorder) RecordTick(delta time.Duration, cmds []domain.Command) {
	r.ticks = append(r.ticks, recorded{delta, cmds})
}

func TestEngine_RecordAndReplay(t *testing.T) {
	f := newFixture(t)
	e, _ := f.engine(testConfig())
	rec := &memRecorder{}
	e.SetRecorder(rec)

	mustOK(t, e.Submit(domain.PlayerInput(heroID, "attack Slime")))
	e.Update(context.Background(), 10*time.Second)
	mustOK(t, e.Submit(domain.PlayerInput(heroID, "devour Slime with Belly")))
	e.Update(context.Background(), 25*time.Second)

	if len(rec.ticks) != 2 || len(rec.ticks[0].cmds) != 1 {
		t.Fatalf("recorded = %+v", rec.ticks)
	}

	// Тот же вход на свежем мире даёт то же состояние
	g := newFixture(t)
	replayed, _ := g.engine(testConfig())
	for _, tick := range rec.ticks {
		replayed.Replay(context.Background(), tick.delta, tick.cmds)
	}

	if g.health(g.slime) != f.health(f.slime) {
		t.Errorf("slime HP replayed %d, original %d", g.health(g.slime), f.health(f.slime))
	}
	if p, _ := g.w.ParentOf(g.slime); p != g.belly {
		t.Error("replayed devour missing")
	}
}
