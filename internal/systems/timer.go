package systems

import "time"

// RepeatingTimer накапливает прошедшее время и срабатывает каждые Period.
//
// Политика догоняния: если за один тик накопилось несколько периодов,
// Tick вернёт столько же срабатываний (65 единиц при периоде 30 дают 2,
// остаток 5 переходит в следующий тик).
type RepeatingTimer struct {
	Period      time.Duration
	accumulated time.Duration
}

// NewRepeatingTimer создаёт таймер. Неположительный период запрещён.
func NewRepeatingTimer(period time.Duration) *RepeatingTimer {
	if period <= 0 {
		panic("systems: timer period must be positive")
	}
	return &RepeatingTimer{Period: period}
}

// Tick добавляет delta и возвращает число срабатываний
func (t *RepeatingTimer) Tick(delta time.Duration) int {
	if delta > 0 {
		t.accumulated += delta
	}
	fires := 0
	for t.accumulated >= t.Period {
		fires++
		t.accumulated -= t.Period
	}
	return fires
}

// Elapsed - сколько накоплено с последнего срабатывания
func (t *RepeatingTimer) Elapsed() time.Duration {
	return t.accumulated
}

// Remaining - сколько осталось до следующего срабатывания
func (t *RepeatingTimer) Remaining() time.Duration {
	return t.Period - t.accumulated
}

// Reset обнуляет накопленное время
func (t *RepeatingTimer) Reset() {
	t.accumulated = 0
}
