package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно партии. Определяет карту, ресурсы и все
	// прочие случайности: реплике достаточно сида и потока действий.
	Seed int64

	Width  int
	Height int

	// TeamNames — имена команд в порядке хода (2-4).
	TeamNames []string

	// StartingGold — казна каждой команды на старте.
	StartingGold int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		Width:        40,
		Height:       40,
		TeamNames:    []string{"red", "blue"},
		StartingGold: 12,
	}
}
