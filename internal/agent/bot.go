package agent

import (
	"context"
	"regexp"

	"maw-server/internal/domain"
	"maw-server/internal/network"
	"maw-server/pkg/api"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CommandSubmitter - вход игрового движка (engine.Engine)
type CommandSubmitter interface {
	Submit(cmd domain.Command) error
}

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
//
// Бот видит мир так же, как обычный клиент: подписывается в хабе на свою
// ленту повествования и отвечает текстовыми командами через Submit.
// Состояние мира ему недоступно, решения принимаются по тексту строк.
type Bot struct {
	Player domain.PlayerID
	Name   string
	Engine CommandSubmitter
	Hub    *network.Broadcaster
	Inbox  chan api.ServerResponse

	log *logrus.Entry
}

var (
	attackRe = regexp.MustCompile(`^(.+) attacks (.+), dealing \d+ damage!$`)
	digestRe = regexp.MustCompile(`^(.+) digests (.+) for \d+ damage!$`)
	engulfRe = regexp.MustCompile(`^(.+) engulfs (.+) into its (.+)!$`)
	devourRe = regexp.MustCompile(`^(.+) devours (.+) with their (.+)!$`)
)

// NewBot регистрирует бота в хабе как обычного клиента
func NewBot(player domain.PlayerID, name string, eng CommandSubmitter, hub *network.Broadcaster) *Bot {
	l := logger.For("agent").WithField("player", uint64(player))
	l.Infof("Creating agent for %s", name)
	return &Bot{
		Player: player,
		Name:   name,
		Engine: eng,
		Hub:    hub,
		Inbox:  hub.Register(player),
		log:    l,
	}
}

// Run слушает ленту до отмены ctx или закрытия канала. Запускать в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Hub.Unregister(b.Player, b.Inbox)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-b.Inbox:
			if !ok {
				b.log.Info("Agent shut down.")
				return
			}
			if text, ok := b.React(msg); ok {
				b.send(text)
			}
		}
	}
}

// React выбирает ответ на пачку строк. За пачку бот делает не больше одной команды.
func (b *Bot) React(msg api.ServerResponse) (string, bool) {
	if msg.Type != api.TypeNarration {
		return "", false
	}

	for _, entry := range msg.Logs {
		if entry.Private {
			b.log.WithField("text", entry.Text).Debug("Rejected")
			continue
		}
		if cmd, ok := b.decide(entry.Text); ok {
			return cmd, true
		}
	}
	return "", false
}

// decide - мозг бота: отвечает на удар ударом, а из чужого органа вырывается
func (b *Bot) decide(text string) (string, bool) {
	if m := attackRe.FindStringSubmatch(text); m != nil && m[2] == b.Name && m[1] != b.Name {
		return "attack " + m[1], true
	}
	for _, re := range []*regexp.Regexp{digestRe, engulfRe, devourRe} {
		if m := re.FindStringSubmatch(text); m != nil && m[2] == b.Name {
			return "struggle", true
		}
	}
	return "", false
}

func (b *Bot) send(text string) {
	if err := b.Engine.Submit(domain.PlayerInput(b.Player, text)); err != nil {
		b.log.WithField("command", text).Warnf("Command dropped: %v", err)
		return
	}
	b.log.WithField("command", text).Debug("Command sent")
}
