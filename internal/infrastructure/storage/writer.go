// Package storage сохраняет и читает записи партий (.mawr).
//
// Формат: zstd-поток, внутри little-endian бинарные записи:
// заголовок файла, имя мира, затем для каждого тика заголовок тика
// и его команды.
package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"maw-server/internal/domain"
	"maw-server/pkg/logger"
)

const (
	MagicHeader string = `MAWR` // 4 байта
	Version1    uint32 = 1

	FileExt = ".mawr"
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic     [4]byte // 4 байта
	Version   uint32  // 4 байта
	Timestamp int64   // 8 байт
	NameLen   uint16  // 2 байта
	TickCount uint32  // 4 байта
}

// TickHeader - заголовок каждого тика
type TickHeader struct {
	DeltaNanos   int64  // 8
	CommandCount uint16 // 2
}

// CommandHeader - заголовок каждой команды, за ним TextLen байт текста
type CommandHeader struct {
	Kind    uint8  // 1
	Player  uint64 // 8
	TextLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись в SaveDir и возвращает путь к файлу
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d%s", session.WorldName, session.Timestamp, FileExt)
	path := filepath.Join(s.SaveDir, filename)

	// Через временный файл: прежняя копия цела до rename
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", err
	}

	bw := bufio.NewWriter(enc)
	if err := writeBinary(bw, session); err != nil {
		enc.Close()
		return "", err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("finish zstd stream: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("publish replay: %w", err)
	}

	logger.For("replay").WithField("path", path).WithField("ticks", len(session.Ticks)).Info("Replay saved.")
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	name := []byte(s.WorldName)
	if len(name) > 65535 {
		return fmt.Errorf("world name too long: %d", len(name))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:   Version1,
		Timestamp: s.Timestamp,
		NameLen:   uint16(len(name)),
		TickCount: uint32(len(s.Ticks)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(name); err != nil {
		return err
	}

	// 2. Пишем тики
	for i, tick := range s.Ticks {
		if len(tick.Commands) > 65535 {
			return fmt.Errorf("tick %d: too many commands: %d", i, len(tick.Commands))
		}
		th := TickHeader{
			DeltaNanos:   int64(tick.Delta),
			CommandCount: uint16(len(tick.Commands)),
		}
		if err := binary.Write(w, binary.LittleEndian, &th); err != nil {
			return err
		}

		for _, cmd := range tick.Commands {
			text := []byte(cmd.Text)
			if len(text) > 65535 {
				return fmt.Errorf("tick %d: command text too long: %d", i, len(text))
			}
			ch := CommandHeader{
				Kind:    uint8(cmd.Kind),
				Player:  uint64(cmd.Player),
				TextLen: uint16(len(text)),
			}
			if err := binary.Write(w, binary.LittleEndian, &ch); err != nil {
				return err
			}
			if _, err := w.Write(text); err != nil {
				return err
			}
		}
	}

	return nil
}

// Recorder копит тики партии в памяти. Реализует engine.Recorder.
//
// Запись ограничена maxTicks: после лимита новые тики отбрасываются,
// а сохранённое остаётся корректным началом партии.
type Recorder struct {
	mu        sync.Mutex
	session   domain.ReplaySession
	maxTicks  int // 0 - без лимита
	truncated bool
}

func NewRecorder(worldName string, started time.Time, maxTicks int) *Recorder {
	return &Recorder{
		session: domain.ReplaySession{
			WorldName: worldName,
			Timestamp: started.Unix(),
		},
		maxTicks: maxTicks,
	}
}

// RecordTick добавляет тик. Команды копируются.
func (r *Recorder) RecordTick(delta time.Duration, commands []domain.Command) {
	cmds := make([]domain.Command, len(commands))
	copy(cmds, commands)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxTicks > 0 && len(r.session.Ticks) >= r.maxTicks {
		if !r.truncated {
			r.truncated = true
			logger.For("replay").WithField("ticks", r.maxTicks).Warn("Replay limit reached, recording stopped.")
		}
		return
	}
	r.session.Ticks = append(r.session.Ticks, domain.ReplayTick{Delta: delta, Commands: cmds})
}

// Truncated сообщает, упёрлась ли запись в лимит
func (r *Recorder) Truncated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.truncated
}

// Session возвращает снимок записи
func (r *Recorder) Session() *domain.ReplaySession {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session
	s.Ticks = make([]domain.ReplayTick, len(r.session.Ticks))
	copy(s.Ticks, r.session.Ticks)
	return &s
}
