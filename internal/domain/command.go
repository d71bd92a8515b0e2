package domain

// CommandKind - вид входящей команды из внешнего мира
type CommandKind uint8

const (
	CommandInput CommandKind = iota // Текст от игрока
	CommandQuit                     // Остановка игрового цикла
)

// Command - элемент входящей очереди.
// Для CommandQuit поля Player и Text не используются.
type Command struct {
	Kind   CommandKind `json:"kind"`
	Player PlayerID    `json:"player,omitempty"`
	Text   string      `json:"text,omitempty"`
}

// PlayerInput - короткий конструктор текстовой команды
func PlayerInput(player PlayerID, text string) Command {
	return Command{Kind: CommandInput, Player: player, Text: text}
}

// QuitCommand - команда остановки
func QuitCommand() Command {
	return Command{Kind: CommandQuit}
}
