// Package input разбирает текст игрока в намерение (domain.Intent).
// Разбор чистый: без доступа к миру и побочных эффектов.
package input

import (
	"strings"

	"maw-server/internal/domain"
)

// Причины отказа. Тексты уходят игроку как есть.
const (
	ReasonMissingAttackTarget = "Missing target for attack"
	ReasonMissingDevourTarget = "Missing target for devour"
	ReasonMissingOrgan        = "Missing organ for devour"
	ReasonMissingRoom         = "Missing room name"
	ReasonUnknownAction       = "Unknown action"
)

// ParseError - ввод не соответствует грамматике
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func fail(reason string) (domain.Intent, error) {
	return domain.Intent{}, &ParseError{Reason: reason}
}

// Parse разбирает строку по пробельным символам:
//
//	attack <target>
//	devour <target> <любое слово> <organ>   ("with", "using" и т.п. игнорируется)
//	moveto <room>
//	struggle
//
// Функция тотальна: на любой ввод возвращает ровно одно намерение или *ParseError.
// Лишние слова в конце команды игнорируются.
func Parse(text string) (domain.Intent, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return fail(ReasonUnknownAction)
	}

	switch words[0] {
	case "attack":
		if len(words) < 2 {
			return fail(ReasonMissingAttackTarget)
		}
		return domain.Intent{Kind: domain.IntentAttack, Target: words[1]}, nil

	case "devour":
		if len(words) < 2 {
			return fail(ReasonMissingDevourTarget)
		}
		// Орган - второе слово после цели, слово между ними пропускается
		if len(words) < 4 {
			return fail(ReasonMissingOrgan)
		}
		return domain.Intent{Kind: domain.IntentDevour, Target: words[1], Organ: words[3]}, nil

	case "moveto":
		if len(words) < 2 {
			return fail(ReasonMissingRoom)
		}
		return domain.Intent{Kind: domain.IntentMoveRoom, Room: words[1]}, nil

	case "struggle":
		return domain.Intent{Kind: domain.IntentStruggle}, nil
	}

	return fail(ReasonUnknownAction)
}
