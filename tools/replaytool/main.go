package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"maw-server/internal/domain"
	"maw-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	session, err := storage.LoadFile(os.Args[2])
	if err != nil {
		fmt.Printf("Cannot read replay: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		printInfo(session)
	case "dump":
		printTicks(session)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(session); err != nil {
			fmt.Printf("Encode failed: %v\n", err)
			os.Exit(1)
		}
	default:
		printHelp()
	}
}

func printInfo(s *domain.ReplaySession) {
	var total time.Duration
	commands := 0
	for _, t := range s.Ticks {
		total += t.Delta
		commands += len(t.Commands)
	}

	fmt.Printf("World:    %s\n", s.WorldName)
	fmt.Printf("Recorded: %s\n", time.Unix(s.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("Ticks:    %d\n", len(s.Ticks))
	fmt.Printf("Commands: %d\n", commands)
	fmt.Printf("Duration: %s\n", total)
}

// printTicks печатает только тики с командами, время - от начала записи
func printTicks(s *domain.ReplaySession) {
	var elapsed time.Duration
	for i, t := range s.Ticks {
		elapsed += t.Delta
		for _, c := range t.Commands {
			switch c.Kind {
			case domain.CommandQuit:
				fmt.Printf("#%-6d +%-10s QUIT\n", i+1, elapsed.Round(time.Millisecond))
			default:
				fmt.Printf("#%-6d +%-10s player %d: %s\n", i+1, elapsed.Round(time.Millisecond), c.Player, c.Text)
			}
		}
	}
}

func printHelp() {
	fmt.Println(`Replay Tool - просмотр записей партий (` + storage.FileExt + `)
Commands:
  info <file>  - мир, дата записи, число тиков и команд
  dump <file>  - команды игроков по тикам
  json <file>  - вся запись в JSON`)
}
