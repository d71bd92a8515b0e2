package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maw-server/internal/domain"
	"maw-server/internal/engine/handlers/actions"
	"maw-server/internal/input"
	"maw-server/internal/systems"
	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrInboxFull - входящая очередь переполнена, команда не принята
var ErrInboxFull = errors.New("engine inbox is full")

// MsgCannotBeDone - ответ игроку при нарушении контракта мира вне строгого режима
const MsgCannotBeDone = "That cannot be done."

// Sink получает ленту повествования раз в тик.
// Срез общий для всех получателей, менять его нельзя.
type Sink interface {
	Publish(ctx context.Context, entries []domain.LogEntry)
}

// Recorder записывает вход каждого тика (для повторов)
type Recorder interface {
	RecordTick(delta time.Duration, commands []domain.Command)
}

// Engine - один изолированный мир и всё, что его меняет.
//
// Мир принадлежит тому, кто вызывает Update (обычно Run).
// Снаружи доступны только Submit и Inbox.
type Engine struct {
	cfg   Config
	world *domain.World

	resolver   *Resolver
	dispatcher *Dispatcher
	behaviors  systems.BehaviorSource

	digestTimer *systems.RepeatingTimer
	aiTimer     *systems.RepeatingTimer

	// Каналы коммуникации
	inbox chan domain.Command
	sinks []Sink

	recorder Recorder

	tick    int64              // Номер текущего тика
	seq     int64              // Счётчик id записей повествования
	pending []domain.LogEntry // Накопленное за тик
	stopped bool

	now func() time.Time
}

// New собирает движок поверх готового мира
func New(cfg Config, w *domain.World, behaviors systems.BehaviorSource) *Engine {
	e := &Engine{
		cfg:         cfg,
		world:       w,
		resolver:    NewResolver(w),
		dispatcher:  NewDispatcher(w),
		behaviors:   behaviors,
		digestTimer: systems.NewRepeatingTimer(cfg.DigestPeriod),
		aiTimer:     systems.NewRepeatingTimer(cfg.AIPeriod),
		inbox:       make(chan domain.Command, cfg.InboxSize),
		now:         time.Now,
	}
	actions.RegisterAll(e.dispatcher)
	return e
}

// AddSink подключает получателя повествования. Вызывать до Run.
func (e *Engine) AddSink(s Sink) {
	e.sinks = append(e.sinks, s)
}

// SetRecorder включает запись повтора. Вызывать до Run.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// World отдаёт мир. Трогать его можно только между тиками из владеющей горутины.
func (e *Engine) World() *domain.World {
	return e.world
}

// Tick - номер последнего выполненного тика
func (e *Engine) Tick() int64 {
	return e.tick
}

// Stopped - получена команда Quit
func (e *Engine) Stopped() bool {
	return e.stopped
}

// Submit кладёт команду во входящую очередь не блокируясь.
// Безопасен для вызова из любых горутин.
func (e *Engine) Submit(cmd domain.Command) error {
	select {
	case e.inbox <- cmd:
		return nil
	default:
		return ErrInboxFull
	}
}

// Inbox - входящая очередь для тех, кто готов ждать
func (e *Engine) Inbox() chan<- domain.Command {
	return e.inbox
}

// Update выполняет один тик:
// входящие команды -> разбор и проверка -> события -> пищеварение -> ИИ -> рассылка.
// Возвращает false, если в этом тике пришёл Quit.
func (e *Engine) Update(ctx context.Context, delta time.Duration) bool {
	if e.stopped {
		return false
	}
	e.tick++

	// 1. Входящие команды (не ждём новых)
	cmds := e.drainInbox()
	if e.recorder != nil {
		e.recorder.RecordTick(delta, cmds)
	}

	return e.step(ctx, delta, cmds)
}

// Replay выполняет тик с заранее известными командами (из записи), минуя очередь
func (e *Engine) Replay(ctx context.Context, delta time.Duration, cmds []domain.Command) bool {
	if e.stopped {
		return false
	}
	e.tick++
	return e.step(ctx, delta, cmds)
}

func (e *Engine) step(ctx context.Context, delta time.Duration, cmds []domain.Command) bool {
	// 2. Разбор и проверка
	for _, cmd := range cmds {
		switch cmd.Kind {
		case domain.CommandQuit:
			e.stopped = true
		case domain.CommandInput:
			e.handleInput(cmd)
		}
		if e.stopped {
			// Команды после Quit в этом тике отбрасываются
			break
		}
	}

	// 3. События
	for _, out := range e.dispatcher.Drain() {
		e.handleOutcome(out)
	}

	// 4. Пищеварение
	for fires := e.digestTimer.Tick(delta); fires > 0; fires-- {
		for _, line := range systems.Digest(e.world) {
			e.AddLog(line, domain.LogDigest)
		}
	}

	// 5. ИИ
	for fires := e.aiTimer.Tick(delta); fires > 0; fires-- {
		systems.RunAI(e.world, e.behaviors, e.AddLog)
	}

	// 6. Рассылка
	e.flush(ctx)
	return !e.stopped
}

func (e *Engine) drainInbox() []domain.Command {
	var cmds []domain.Command
	for {
		select {
		case cmd := <-e.inbox:
			cmds = append(cmds, cmd)
			if cmd.Kind == domain.CommandQuit {
				return cmds
			}
		default:
			return cmds
		}
	}
}

// handleInput: игрок -> текст -> намерение -> событие в очередь диспетчера
func (e *Engine) handleInput(cmd domain.Command) {
	actor, ok := e.resolver.PlayerEntity(cmd.Player)
	if !ok {
		e.AddPrivateLog(cmd.Player, MsgNotInWorld)
		return
	}

	intent, err := input.Parse(cmd.Text)
	if err != nil {
		e.AddPrivateLog(cmd.Player, err.Error())
		return
	}

	ev, err := e.resolver.Resolve(actor, intent)
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		e.AddPrivateLog(cmd.Player, verr.Message)
		return
	case err != nil:
		e.contractViolation(cmd.Player, true, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"tick":      e.tick,
		"player":    cmd.Player,
		"event":     ev.Type.String(),
	}).Debug("Command accepted.")

	if !e.dispatcher.Enqueue(ev) {
		e.AddPrivateLog(cmd.Player, MsgCannotBeDone)
	}
}

func (e *Engine) handleOutcome(out Outcome) {
	player, isPlayer := e.playerOf(out.Event.Actor)

	if out.Err != nil {
		e.contractViolation(player, isPlayer, out.Err)
		return
	}
	res := out.Result
	if res.Msg == "" {
		return
	}
	if res.IsPrivate() {
		if isPlayer {
			e.AddPrivateLog(player, res.Msg)
		}
		return
	}
	e.AddLog(res.Msg, res.MsgType)
}

// contractViolation - ошибка программиста: паника в строгом режиме,
// иначе лог и одно сообщение игроку (если действовал игрок)
func (e *Engine) contractViolation(player domain.PlayerID, isPlayer bool, err error) {
	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"tick":      e.tick,
		"player":    player,
	}).WithError(err).Error("World contract violation.")

	if e.cfg.Strict {
		panic(fmt.Sprintf("world contract violation: %v", err))
	}
	if isPlayer {
		e.AddPrivateLog(player, MsgCannotBeDone)
	}
}

func (e *Engine) playerOf(id domain.EntityID) (domain.PlayerID, bool) {
	p, ok := e.world.Players.Get(id)
	if !ok {
		return 0, false
	}
	return p.ID, true
}

func (e *Engine) flush(ctx context.Context) {
	if len(e.pending) == 0 {
		return
	}
	batch := e.pending
	e.pending = nil
	for _, s := range e.sinks {
		s.Publish(ctx, batch)
	}
}
