package api

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	TypeWelcome   = "WELCOME"
	TypeNarration = "NARRATION"
	TypeError     = "ERROR"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Отправляется раз в тик, если для клиента есть новые строки повествования.
type ServerResponse struct {
	// Type тип сообщения (WELCOME, NARRATION, ERROR).
	Type string `json:"type"`

	// Tick номер тика, в котором появились строки.
	Tick int64 `json:"tick,omitempty"`

	// MyPlayerID id игрока, от имени которого говорит клиент.
	MyPlayerID uint64 `json:"myPlayerId,omitempty"`

	// Logs строки, видимые этому клиенту: общие и адресованные лично ему.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст ошибки для Type == ERROR.
	Error string `json:"error,omitempty"`
}

// LogEntry - одна строка повествования
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, COMBAT, DIGEST, AI, ERROR
	Private   bool   `json:"private,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - команда игрока. Клиент может прислать и просто текстовый кадр,
// тогда весь кадр считается полем Text.
type ClientCommand struct {
	Text string `json:"text"`
}
