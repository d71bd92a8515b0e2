package engine

import (
	"context"
	"os"
	"testing"
	"time"

	"maw-server/internal/domain"
	"maw-server/internal/monsters"
	"maw-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

const (
	heroID  domain.PlayerID = 1
	digestP                 = 30 * time.Second
)

// collectSink копит всё, что движок рассылает
type collectSink struct {
	batches [][]domain.LogEntry
}

func (s *collectSink) Publish(_ context.Context, entries []domain.LogEntry) {
	s.batches = append(s.batches, entries)
}

func (s *collectSink) all() []domain.LogEntry {
	var out []domain.LogEntry
	for _, b := range s.batches {
		out = append(out, b...)
	}
	return out
}

func (s *collectSink) texts() []string {
	var out []string
	for _, e := range s.all() {
		out = append(out, e.Text)
	}
	return out
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.TickInterval = time.Millisecond
	cfg.DigestPeriod = digestP
	cfg.AIPeriod = time.Hour
	cfg.InboxSize = 16
	return cfg
}

// fixture: пещера, в ней Slime (желудок Stomach) и Hero (живот Belly)
type fixture struct {
	w       *domain.World
	room    domain.EntityID
	slime   domain.EntityID
	stomach domain.EntityID
	hero    domain.EntityID
	belly   domain.EntityID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	w := domain.NewWorld()
	f := fixture{w: w}

	f.room = w.Spawn()
	mustOK(t, w.SetName(f.room, "Cave"))
	mustOK(t, w.Rooms.Add(f.room, domain.RoomComponent{}))

	var err error
	f.slime, err = monsters.DefaultRegistry().Spawn(w, "slime", f.room)
	mustOK(t, err)
	f.stomach = w.ChildrenOf(f.slime)[0]

	f.hero, err = monsters.CreatePlayer(w, monsters.PlayerParams{
		ID:    heroID,
		Actor: monsters.ActorParams{Name: "Hero", Health: 500, Attack: 30},
		Organs: []monsters.OrganSpec{{
			Name:   "Belly",
			Params: domain.OrganParams{Health: 100, Attack: 10, Capacity: 100},
		}},
	}, f.room)
	mustOK(t, err)
	f.belly = w.ChildrenOf(f.hero)[0]
	return f
}

func (f fixture) engine(cfg Config) (*Engine, *collectSink) {
	e := New(cfg, f.w, monsters.DefaultRegistry())
	sink := &collectSink{}
	e.AddSink(sink)
	return e, sink
}

func (f fixture) health(id domain.EntityID) int {
	a, _ := f.w.Actors.Get(id)
	return a.HealthCurrent
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
