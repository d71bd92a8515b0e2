package domain

// LogType - тип строки повествования
type LogType string

const (
	LogInfo   LogType = "INFO"
	LogCombat LogType = "COMBAT"
	LogDigest LogType = "DIGEST"
	LogAI     LogType = "AI"
	LogError  LogType = "ERROR"
)

// LogEntry - строка повествования или ошибка для игрока.
// Private == false: рассылается всем. Иначе адресована Recipient.
type LogEntry struct {
	ID        string   `json:"id"`
	Tick      int64    `json:"tick"`
	Text      string   `json:"text"`
	Type      LogType  `json:"type"`
	Private   bool     `json:"private,omitempty"`
	Recipient PlayerID `json:"recipient,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// VisibleTo сообщает, должен ли игрок увидеть эту запись
func (e LogEntry) VisibleTo(player PlayerID) bool {
	return !e.Private || e.Recipient == player
}
