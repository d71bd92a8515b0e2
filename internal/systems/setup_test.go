package systems

import (
	"os"
	"testing"

	"maw-server/internal/domain"
	"maw-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// spawnActor - вспомогательная функция для тестов
func spawnActor(t *testing.T, w *domain.World, name string, health, attack int) domain.EntityID {
	t.Helper()
	id := w.Spawn()
	if err := w.SetName(id, name); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := w.Actors.Add(id, domain.NewActor(health, attack, 0)); err != nil {
		t.Fatalf("add actor: %v", err)
	}
	return id
}

func spawnOrgan(t *testing.T, w *domain.World, owner domain.EntityID, name string, params domain.OrganParams) domain.EntityID {
	t.Helper()
	id := w.Spawn()
	if err := w.SetName(id, name); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := w.Organs.Add(id, domain.NewOrgan(params)); err != nil {
		t.Fatalf("add organ: %v", err)
	}
	if err := w.SetParent(id, owner); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	return id
}
