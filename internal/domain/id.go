package domain

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор сущности.
//
// Сама по себе сущность не имеет типа: смысл ей придают только
// прикреплённые компоненты.
//
// Формат битов (от старших к младшим):
//
//	[ Generation (32) | Index (32) ]
//
// Index - номер слота в World, Generation - версия слота. При Despawn слот
// освобождается, а поколение увеличивается, поэтому старые ссылки на
// уничтоженную сущность перестают считаться живыми.
type EntityID uint64

// NilEntityID - нулевой идентификатор ("сущности нет").
// Слот с индексом 0 никогда не выдаётся.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 32

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
)

// PackEntityID собирает EntityID из поколения и индекса слота.
func PackEntityID(gen uint32, index uint32) EntityID {
	return EntityID((uint64(gen) << shiftGen) | uint64(index))
}

// Index возвращает индекс слота.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String для логов: [idx:gen]
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[%d:%d]", id.Index(), id.Generation())
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших uint64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строку, так и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*id = NilEntityID
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(v)
	return nil
}

// PlayerID - внешний идентификатор игрока (например, id пользователя в чате).
// По нему входящие команды сопоставляются с сущностью.
type PlayerID uint64

func (p PlayerID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}
