package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

func (s *JournalService) Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*Journal, error) {
	// 1. Читаем заголовок целиком
	var header JournalFileHeader
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

	journal := &Journal{
		Seed:         header.Seed,
		Timestamp:    header.Timestamp,
		Width:        int(header.Width),
		Height:       int(header.Height),
		StartingGold: int(header.StartingGold),
		TeamNames:    make([]string, header.TeamCount),
		Actions:      make([]JournalAction, header.ActionCount),
	}

	// 2. Читаем имена команд
	for i := 0; i < int(header.TeamCount); i++ {
		var nameLen [1]byte
		if _, err := io.ReadFull(r, nameLen[:]); err != nil {
			return nil, fmt.Errorf("failed to read team name length: %w", err)
		}
		nameBuf := make([]byte, nameLen[0])
		if _, err := io.ReadFull(r, nameBuf); err != nil {
			return nil, fmt.Errorf("failed to read team name: %w", err)
		}
		journal.TeamNames[i] = string(nameBuf)
	}

	// 3. Читаем действия
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, err
		}

		act := JournalAction{
			Turn:   int(ah.Turn),
			Team:   domain.TeamID(ah.Team),
			Action: domain.ActionType(ah.ActionType),
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, err
			}
		}

		journal.Actions[i] = act
	}

	return journal, nil
}
