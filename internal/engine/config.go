package engine

import "time"

// Config хранит параметры игрового цикла.
// Все периоды - именованные параметры, а не константы в коде.
type Config struct {
	// TickInterval - шаг хост-цикла (как часто вызывается Update)
	TickInterval time.Duration
	// DigestPeriod - как часто органы переваривают содержимое
	DigestPeriod time.Duration
	// AIPeriod - как часто срабатывает поведение монстров
	AIPeriod time.Duration
	// InboxSize - ёмкость входящей очереди команд
	InboxSize int
	// Strict - паниковать при нарушении контракта мира (режим разработки)
	Strict bool
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		TickInterval: 100 * time.Millisecond,
		DigestPeriod: 30 * time.Second,
		AIPeriod:     30 * time.Second,
		InboxSize:    256,
		Strict:       false,
	}
}
