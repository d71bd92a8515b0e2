package engine

import (
	"strconv"

	"maw-server/internal/domain"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет строку повествования для всех
func (e *Engine) AddLog(text string, logType domain.LogType) {
	e.appendLog(domain.LogEntry{Text: text, Type: logType})
}

// AddPrivateLog добавляет сообщение, которое увидит только игрок player
func (e *Engine) AddPrivateLog(player domain.PlayerID, text string) {
	e.appendLog(domain.LogEntry{Text: text, Type: domain.LogError, Private: true, Recipient: player})
}

func (e *Engine) appendLog(entry domain.LogEntry) {
	e.seq++
	entry.ID = strconv.FormatInt(e.seq, 10)
	entry.Tick = e.tick
	entry.Timestamp = e.now().UnixMilli()
	e.pending = append(e.pending, entry)

	fields := logrus.Fields{
		"tick":      e.tick,
		"component": "game_log",
		"log_type":  entry.Type,
	}
	if entry.Private {
		fields["recipient"] = entry.Recipient
	}
	logger.Log.WithFields(fields).Info(entry.Text)
}
