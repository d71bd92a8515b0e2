package domain

import "time"

// ReplayTick - всё, что пришло извне за один тик
type ReplayTick struct {
	Delta    time.Duration `json:"delta"`
	Commands []Command     `json:"commands,omitempty"`
}

// ReplaySession - полная запись партии.
// Мир строится заново из того же файла мира, дальше тики проигрываются по порядку.
type ReplaySession struct {
	WorldName string       `json:"worldName"`
	Timestamp int64        `json:"timestamp"`
	Ticks     []ReplayTick `json:"ticks"`
}
