package handlers

import (
	"maw-server/internal/domain"
)

// TargetLostMsg - цель или орган исчезли между проверкой и исполнением.
// Мир в этом случае не меняется, игрок получает сообщение лично.
const TargetLostMsg = "Your target is no longer valid."

// Context передает хендлеру состояние мира.
// Хендлер единолично владеет миром на время вызова и может его менять.
type Context struct {
	World *domain.World
	Actor domain.EntityID // Тот, кто выполняет действие (игрок или монстр)
}

// Result - возвращает результат выполнения события.
// Хендлер НЕ пишет в ленту повествования напрямую, он возвращает данные.
// Результат типа ERROR уходит только актору, остальные - всем.
type Result struct {
	Msg     string         // Текст повествования
	MsgType domain.LogType // Тип строки (INFO, COMBAT, ERROR)
}

// HandlerFunc - это контракт для любого события (ATTACK, DEVOUR, etc).
// Возвращённая ошибка означает нарушение контракта мира, а не ошибку игрока.
type HandlerFunc func(ctx Context, ev domain.Event) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// TargetLost - стандартный ответ на гонку за компонент
func TargetLost() Result {
	return Result{Msg: TargetLostMsg, MsgType: domain.LogError}
}

// IsPrivate сообщает, адресован ли результат только актору
func (r Result) IsPrivate() bool {
	return r.MsgType == domain.LogError
}
