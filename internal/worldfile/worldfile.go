// Package worldfile читает описание стартового мира из YAML.
//
// Файл проверяется JSON-схемой (schema.json) до разбора в структуры,
// поэтому ошибки формата указывают на конкретное поле.
package worldfile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://maw-server/schemas/world.schema.json"

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// Definition - весь мир
type Definition struct {
	Name  string `yaml:"name" json:"name"`
	Rooms []Room `yaml:"rooms" json:"rooms"`
}

// Room - комната и её стартовые обитатели
type Room struct {
	Name     string    `yaml:"name" json:"name"`
	Monsters []Monster `yaml:"monsters,omitempty" json:"monsters,omitempty"`
	Players  []Player  `yaml:"players,omitempty" json:"players,omitempty"`
}

// Monster - вид из реестра монстров
type Monster struct {
	Species string `yaml:"species" json:"species"`
	Count   int    `yaml:"count,omitempty" json:"count,omitempty"` // 0 означает 1
}

// Player - персонаж игрока
type Player struct {
	ID      uint64  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Health  int     `yaml:"health" json:"health"`
	Attack  int     `yaml:"attack" json:"attack"`
	Defense int     `yaml:"defense,omitempty" json:"defense,omitempty"`
	Organs  []Organ `yaml:"organs,omitempty" json:"organs,omitempty"`
	// Bot - персонажем управляет встроенный агент, а не человек
	Bot bool `yaml:"bot,omitempty" json:"bot,omitempty"`
}

// Organ - орган игрока. Пустые числа заменяются значениями по умолчанию.
type Organ struct {
	Name     string `yaml:"name" json:"name"`
	Health   int    `yaml:"health,omitempty" json:"health,omitempty"`
	Attack   int    `yaml:"attack,omitempty" json:"attack,omitempty"`
	Defense  int    `yaml:"defense,omitempty" json:"defense,omitempty"`
	Capacity int    `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	Type     string `yaml:"type,omitempty" json:"type,omitempty"`
}

// Default - встроенный сценарий: одна пещера со слизнем, слизнедевой и героем
func Default() Definition {
	return Definition{
		Name: "default",
		Rooms: []Room{{
			Name: "Cave",
			Monsters: []Monster{
				{Species: "slime"},
				{Species: "slimegirl"},
			},
			Players: []Player{{
				ID:     1,
				Name:   "Hero",
				Health: 500,
				Attack: 30,
				Organs: []Organ{{Name: "Stomach", Health: 500, Attack: 15, Defense: 10, Capacity: 100, Type: "generic"}},
			}},
		}},
	}
}

// Load читает файл мира. Пустой путь - встроенный сценарий.
func Load(path string) (Definition, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read world file: %w", err)
	}
	def, err := Parse(b)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse проверяет YAML схемой и разбирает его
func Parse(b []byte) (Definition, error) {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Definition{}, fmt.Errorf("parse yaml: %w", err)
	}

	// Валидатор работает с JSON-значениями: прогоняем документ через JSON
	js, err := json.Marshal(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("convert to json: %w", err)
	}
	var doc any
	if err := json.Unmarshal(js, &doc); err != nil {
		return Definition{}, fmt.Errorf("convert to json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Definition{}, fmt.Errorf("invalid world: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(b, &def); err != nil {
		return Definition{}, fmt.Errorf("decode world: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("invalid world: %w", err)
	}
	return def, nil
}

// Bots возвращает игроков, которыми управляет агент
func (d Definition) Bots() []Player {
	var out []Player
	for _, r := range d.Rooms {
		for _, p := range r.Players {
			if p.Bot {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate проверяет то, что схема выразить не может: id игроков уникальны.
// Имена уникальными быть не обязаны.
func (d Definition) Validate() error {
	players := make(map[uint64]bool)
	for _, r := range d.Rooms {
		for _, p := range r.Players {
			if players[p.ID] {
				return fmt.Errorf("duplicate player id %d", p.ID)
			}
			players[p.ID] = true
		}
	}
	return nil
}
