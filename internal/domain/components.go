package domain

// --- КОМПОНЕНТЫ ---

// ActorComponent - участник боя (игрок или монстр)
type ActorComponent struct {
	HealthCurrent int `json:"healthCurrent"`
	HealthMax     int `json:"healthMax"`
	Attack        int `json:"attack"`
	Defense       int `json:"defense"` // Пока не участвует в расчёте урона
}

// NewActor создаёт актора с полным здоровьем
func NewActor(health, attack, defense int) ActorComponent {
	return ActorComponent{
		HealthCurrent: health,
		HealthMax:     health,
		Attack:        attack,
		Defense:       defense,
	}
}

// OrganComponent - контейнер, который держит добычу и периодически её переваривает
type OrganComponent struct {
	HealthCurrent   int       `json:"healthCurrent"`
	HealthMax       int       `json:"healthMax"`
	Attack          int       `json:"attack"`
	Defense         int       `json:"defense"`
	Capacity        int       `json:"capacity"`
	FullnessCurrent int       `json:"fullnessCurrent"` // Вместимость пока не проверяется при devour
	Type            OrganType `json:"type"`
}

// OrganParams - параметры для NewOrgan
type OrganParams struct {
	Health   int
	Attack   int
	Defense  int
	Capacity int
	Type     OrganType
}

// NameComponent - отображаемое имя. Уникальность НЕ гарантируется.
type NameComponent struct {
	Value string `json:"value"`
}

// RoomComponent - маркер комнаты. Находиться в комнате = быть её потомком.
type RoomComponent struct{}

// AIBehaviorComponent - сущность управляется ИИ.
// Species - ключ вида в реестре монстров, по нему находится поведение.
type AIBehaviorComponent struct {
	Species string `json:"species"`
}

// PlayerComponent - связь сущности с внешним игроком
type PlayerComponent struct {
	ID PlayerID `json:"id"`
}
