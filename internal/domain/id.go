package domain

import (
	"fmt"
	"strconv"
)

// EntityID — 64-битный идентификатор игровой сущности.
//
// EntityID является value-type и предназначен для дешёвого копирования,
// сериализации и сравнения.
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Team (8) | Serial (48) ]
//
// Где:
//   - Kind — тип сущности (юнит, здание, ресурс)
//   - Team — команда-владелец на момент создания (для ресурсов 0xFF)
//   - Serial — порядковый номер, выдаваемый движком
//
// Serial выдаётся строго последовательно из состояния партии, поэтому
// все реплицированные клиенты присваивают новым сущностям одинаковые ID.
// Это ключевое свойство для сходимости сетевого состояния.
type EntityID uint64

// NilEntityID — нулевой идентификатор: сущность отсутствует.
const NilEntityID EntityID = 0

// Конфигурация битов EntityID.
const (
	bitsSerial = 48
	bitsTeam   = 8
	bitsKind   = 8

	shiftTeam = bitsSerial
	shiftKind = bitsSerial + bitsTeam

	maskSerial = (uint64(1) << bitsSerial) - 1
	maskTeam   = (uint64(1) << bitsTeam) - 1
	maskKind   = (uint64(1) << bitsKind) - 1
)

// EntityKind — тип сущности, зашитый в старшие биты ID.
type EntityKind uint8

const (
	KindNone     EntityKind = 0
	KindUnit     EntityKind = 1
	KindBuilding EntityKind = 2
	KindPickup   EntityKind = 3
)

// NeutralOwner помечает сущности без владельца (ресурсы на карте).
const NeutralOwner = TeamID(0xFF)

// MakeID собирает EntityID из составных частей.
func MakeID(kind EntityKind, team TeamID, serial uint64) EntityID {
	return EntityID(uint64(kind)<<shiftKind |
		(uint64(team)&maskTeam)<<shiftTeam |
		serial&maskSerial)
}

// Kind возвращает тип сущности.
func (id EntityID) Kind() EntityKind {
	return EntityKind(uint64(id) >> shiftKind & maskKind)
}

// Owner возвращает команду, создавшую сущность.
func (id EntityID) Owner() TeamID {
	return TeamID(uint64(id) >> shiftTeam & maskTeam)
}

// Serial возвращает порядковый номер сущности.
func (id EntityID) Serial() uint64 {
	return uint64(id) & maskSerial
}

// IsNil сообщает, что идентификатор пуст.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает человекочитаемую форму вида "u2:17".
func (id EntityID) String() string {
	if id.IsNil() {
		return "nil"
	}
	var k byte
	switch id.Kind() {
	case KindUnit:
		k = 'u'
	case KindBuilding:
		k = 'b'
	case KindPickup:
		k = 'p'
	default:
		k = '?'
	}
	return fmt.Sprintf("%c%d:%d", k, id.Owner(), id.Serial())
}

// MarshalText / UnmarshalText кодируют ID как десятичное число,
// чтобы JSON оставался компактным и не терял точность uint64.
func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(id), 10)), nil
}

func (id *EntityID) UnmarshalText(b []byte) error {
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entity id %q: %w", string(b), err)
	}
	*id = EntityID(v)
	return nil
}
