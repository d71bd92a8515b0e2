package domain

// IntentKind - разобранное, но ещё не проверенное намерение игрока
type IntentKind uint8

const (
	IntentUnknown IntentKind = iota
	IntentAttack
	IntentDevour
	IntentMoveRoom
	IntentStruggle
)

var intentKindToString = map[IntentKind]string{
	IntentAttack:   "ATTACK",
	IntentDevour:   "DEVOUR",
	IntentMoveRoom: "MOVE_ROOM",
	IntentStruggle: "STRUGGLE",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k IntentKind) String() string {
	if val, ok := intentKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Intent - намерение с именами вместо id.
// Заполнены только поля, нужные для Kind.
type Intent struct {
	Kind   IntentKind
	Target string // ATTACK, DEVOUR
	Organ  string // DEVOUR
	Room   string // MOVE_ROOM
}
