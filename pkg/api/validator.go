package api

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxCommandLength - предел длины одной команды в байтах
const MaxCommandLength = 512

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (c ClientCommand) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return errors.New("command text is required")
	}
	if len(c.Text) > MaxCommandLength {
		return errors.New("command text too long")
	}
	if !utf8.ValidString(c.Text) {
		return errors.New("command text must be valid UTF-8")
	}
	return nil
}
