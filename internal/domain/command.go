package domain

import "encoding/json"

// Command - команда для движка, уже приведённая к внутреннему виду.
// Payload парсится конкретным хендлером действия.
type Command struct {
	Action  ActionType
	Team    TeamID
	Payload json.RawMessage
}
