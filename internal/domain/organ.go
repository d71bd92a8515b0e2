package domain

import "strings"

// OrganType определяет особое поведение органа при переваривании
type OrganType uint8

const (
	OrganGeneric OrganType = iota
	OrganWomb
	OrganBreast
	// В будущем: хвосты и прочее
)

var organStringToType = map[string]OrganType{
	"GENERIC": OrganGeneric,
	"WOMB":    OrganWomb,
	"BREAST":  OrganBreast,
}

var organTypeToString = map[OrganType]string{
	OrganGeneric: "GENERIC",
	OrganWomb:    "WOMB",
	OrganBreast:  "BREAST",
}

// ParseOrganType конвертирует строку (из файла мира) в OrganType.
// Неизвестные значения считаются Generic.
func ParseOrganType(s string) (OrganType, bool) {
	val, ok := organStringToType[strings.ToUpper(s)]
	if !ok {
		return OrganGeneric, false
	}
	return val, true
}

// String реализует интерфейс Stringer
func (t OrganType) String() string {
	if val, ok := organTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}
