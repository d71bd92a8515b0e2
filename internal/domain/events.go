package domain

// EventType - тип проверенного доменного события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventAttack
	EventDevour
	EventMoveRoom
	EventStruggle
)

var eventTypeToString = map[EventType]string{
	EventAttack:   "ATTACK",
	EventDevour:   "DEVOUR",
	EventMoveRoom: "MOVE_ROOM",
	EventStruggle: "STRUGGLE",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (t EventType) String() string {
	if val, ok := eventTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - проверенное действие с id сущностей, готовое к исполнению.
//
//	ATTACK:    Actor бьёт Target
//	DEVOUR:    Actor проглатывает Target органом Organ
//	MOVE_ROOM: Actor идёт в Room
//	STRUGGLE:  Actor сопротивляется
type Event struct {
	Type   EventType
	Actor  EntityID
	Target EntityID
	Organ  EntityID
	Room   EntityID
}

func AttackEvent(actor, target EntityID) Event {
	return Event{Type: EventAttack, Actor: actor, Target: target}
}

func DevourEvent(actor, prey, organ EntityID) Event {
	return Event{Type: EventDevour, Actor: actor, Target: prey, Organ: organ}
}

func MoveRoomEvent(actor, room EntityID) Event {
	return Event{Type: EventMoveRoom, Actor: actor, Room: room}
}

func StruggleEvent(actor EntityID) Event {
	return Event{Type: EventStruggle, Actor: actor}
}
