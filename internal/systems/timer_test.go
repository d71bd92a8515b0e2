package systems

import (
	"testing"
	"time"
)

func TestRepeatingTimer_Tick(t *testing.T) {
	tests := []struct {
		name      string
		deltas    []time.Duration
		wantFires []int
		wantLeft  time.Duration
	}{
		{
			name:      "fires once per period",
			deltas:    []time.Duration{10, 10, 10, 10, 10, 10},
			wantFires: []int{0, 0, 1, 0, 0, 1},
			wantLeft:  0,
		},
		{
			name:      "catch up fires twice for 65 on period 30",
			deltas:    []time.Duration{65},
			wantFires: []int{2},
			wantLeft:  5,
		},
		{
			name:      "remainder carries over",
			deltas:    []time.Duration{45, 15, 29, 1},
			wantFires: []int{1, 1, 0, 1},
			wantLeft:  0,
		},
		{
			name:      "non-positive delta ignored",
			deltas:    []time.Duration{-10, 0, 30},
			wantFires: []int{0, 0, 1},
			wantLeft:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewRepeatingTimer(30)
			for i, d := range tt.deltas {
				if got := timer.Tick(d); got != tt.wantFires[i] {
					t.Errorf("tick %d (delta %d): fires = %d, want %d", i, d, got, tt.wantFires[i])
				}
			}
			if timer.Elapsed() != tt.wantLeft {
				t.Errorf("Elapsed = %d, want %d", timer.Elapsed(), tt.wantLeft)
			}
		})
	}
}

// При шаге хост-цикла 100ms и периоде 30s срабатывание ровно одно на каждые 300 тиков
func TestRepeatingTimer_FixedCadence(t *testing.T) {
	timer := NewRepeatingTimer(30 * time.Second)
	total := 0
	for tick := 1; tick <= 900; tick++ {
		fires := timer.Tick(100 * time.Millisecond)
		if fires > 1 {
			t.Fatalf("tick %d fired %d times", tick, fires)
		}
		if fires == 1 && tick%300 != 0 {
			t.Errorf("fired on tick %d, expected only multiples of 300", tick)
		}
		total += fires
	}
	if total != 3 {
		t.Errorf("total fires = %d, want 3", total)
	}
}

func TestNewRepeatingTimer_PanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero period")
		}
	}()
	NewRepeatingTimer(0)
}
