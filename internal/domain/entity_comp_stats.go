package domain

// TakeDamage наносит урон актору.
// Защита не учитывается, пол на нуле не ставится: здоровье может уйти в минус.
func (a *ActorComponent) TakeDamage(amount int) {
	a.HealthCurrent -= amount
}

// IsDown - здоровье кончилось. Смерть пока никак не обрабатывается.
func (a *ActorComponent) IsDown() bool {
	return a.HealthCurrent <= 0
}

// NewOrgan создаёт орган с полным здоровьем и пустым содержимым
func NewOrgan(p OrganParams) OrganComponent {
	return OrganComponent{
		HealthCurrent:   p.Health,
		HealthMax:       p.Health,
		Attack:          p.Attack,
		Defense:         p.Defense,
		Capacity:        p.Capacity,
		FullnessCurrent: 0,
		Type:            p.Type,
	}
}

// DefaultOrgan - орган "по умолчанию"
func DefaultOrgan() OrganComponent {
	return NewOrgan(OrganParams{
		Health:   1000,
		Attack:   100,
		Defense:  100,
		Capacity: 100,
		Type:     OrganGeneric,
	})
}

// HPPercent возвращает долю оставшегося здоровья органа (0..1)
func (o *OrganComponent) HPPercent() float64 {
	if o.HealthMax == 0 {
		return 0
	}
	return float64(o.HealthCurrent) / float64(o.HealthMax)
}
