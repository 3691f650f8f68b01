package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

const (
	MagicHeader string = `RPJ1` // 4 байта
	Version1    uint32 = 1
)

// JournalFileHeader — это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type JournalFileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Seed         int64   // 8 байт
	Timestamp    int64   // 8 байт
	Width        int32   // 4 байта
	Height       int32   // 4 байта
	StartingGold int32   // 4 байта
	TeamCount    uint8   // 1 байт
	_            [3]byte // выравнивание до кратности 4
	ActionCount  int32   // 4 байта
}

// ActionHeader — заголовок каждой записи действия.
type ActionHeader struct {
	Turn       int32  // 4
	Team       uint8  // 1
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

// JournalAction — одно применённое действие в том порядке, в котором
// движок его принял. Payload хранится как сырой JSON команды.
type JournalAction struct {
	Turn    int
	Team    domain.TeamID
	Action  domain.ActionType
	Payload []byte
}

// Journal — всё, что нужно для детерминированного повтора партии:
// конфигурация мира плюс упорядоченный список действий.
type Journal struct {
	Seed         int64
	Timestamp    int64
	Width        int
	Height       int
	StartingGold int
	TeamNames    []string
	Actions      []JournalAction
}

type JournalService struct {
	SaveDir string
}

func NewJournalService(dir string) *JournalService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.Mkdir(dir, 0755)
	}
	return &JournalService{SaveDir: dir}
}

func (s *JournalService) Save(j *Journal) (string, error) {
	filename := fmt.Sprintf("match_%d_%d.rpj", j.Seed, j.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, j); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, j *Journal) error {
	if len(j.TeamNames) > 255 {
		return fmt.Errorf("too many teams: %d", len(j.TeamNames))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := JournalFileHeader{
		Version:      Version1,
		Seed:         j.Seed,
		Timestamp:    j.Timestamp,
		Width:        int32(j.Width),
		Height:       int32(j.Height),
		StartingGold: int32(j.StartingGold),
		TeamCount:    uint8(len(j.TeamNames)),
		ActionCount:  int32(len(j.Actions)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Пишем имена команд: длина (1 байт) + байты строки
	for _, name := range j.TeamNames {
		nameBytes := []byte(name)
		if len(nameBytes) > 255 {
			return fmt.Errorf("team name too long: %d", len(nameBytes))
		}
		if _, err := w.Write([]byte{uint8(len(nameBytes))}); err != nil {
			return err
		}
		if _, err := w.Write(nameBytes); err != nil {
			return err
		}
	}

	// 3. Пишем действия
	for _, act := range j.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			Team:       uint8(act.Team),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}

		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
