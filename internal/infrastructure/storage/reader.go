package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"maw-server/internal/domain"
)

// Load читает запись партии
func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает запись партии по произвольному пути
func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return readBinary(bufio.NewReader(dec))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	name := make([]byte, header.NameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("failed to read world name: %w", err)
	}

	session := &domain.ReplaySession{
		WorldName: string(name),
		Timestamp: header.Timestamp,
		Ticks:     make([]domain.ReplayTick, header.TickCount),
	}

	// 2. Читаем тики
	for i := range session.Ticks {
		var th TickHeader
		if err := binary.Read(r, binary.LittleEndian, &th); err != nil {
			return nil, fmt.Errorf("tick %d: %w", i, err)
		}

		tick := domain.ReplayTick{Delta: time.Duration(th.DeltaNanos)}
		if th.CommandCount > 0 {
			tick.Commands = make([]domain.Command, th.CommandCount)
		}
		for j := range tick.Commands {
			var ch CommandHeader
			if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
				return nil, fmt.Errorf("tick %d command %d: %w", i, j, err)
			}
			text := make([]byte, ch.TextLen)
			if _, err := io.ReadFull(r, text); err != nil {
				return nil, fmt.Errorf("tick %d command %d: %w", i, j, err)
			}
			tick.Commands[j] = domain.Command{
				Kind:   domain.CommandKind(ch.Kind),
				Player: domain.PlayerID(ch.Player),
				Text:   string(text),
			}
		}
		session.Ticks[i] = tick
	}

	return session, nil
}
