package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stdout с настройками logrus по умолчанию,
// чтобы пакеты можно было использовать в тестах без main.
var Log = logrus.New()

// Init настраивает глобальный логгер из переменных окружения
// LOG_LEVEL (по умолчанию "info") и LOG_FORMAT ("json" или "text").
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure настраивает логгер явно (используется конфигом сервера).
func Configure(level, format string, out io.Writer) {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	// "json" - для продакшена и сбора логов, "text" - для разработки.
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	l.SetOutput(out)
	Log = l
}

// For возвращает логгер с полем component
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
