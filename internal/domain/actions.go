package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия игрока.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionSpawn
	ActionBuild
	ActionUpgrade
	ActionEndTurn
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":     ActionMove,
	"SPAWN":    ActionSpawn,
	"BUILD":    ActionBuild,
	"UPGRADE":  ActionUpgrade,
	"END_TURN": ActionEndTurn,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:    "MOVE",
	ActionSpawn:   "SPAWN",
	ActionBuild:   "BUILD",
	ActionUpgrade: "UPGRADE",
	ActionEndTurn: "END_TURN",
}

// ParseAction конвертирует строку из JSON в ActionType.
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf и логов).
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
