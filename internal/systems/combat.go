package systems

import (
	"fmt"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// AttackResult — исход одной атаки.
type AttackResult struct {
	Killed bool
	Msg    string
}

// AttackUnit наносит удар по вражескому юниту.
// Урон фиксированный: hp_после = max(0, hp_до − damage атакующего).
// Убитый юнит удаляется из состояния.
func AttackUnit(state *domain.GameState, attacker *domain.Unit, defender *domain.Unit) AttackResult {
	died := defender.TakeDamage(attacker.Damage)
	if died {
		state.RemoveUnit(defender.ID)
		return AttackResult{
			Killed: true,
			Msg:    fmt.Sprintf("%s %s killed %s %s", teamName(state, attacker.Team), attacker.Type, teamName(state, defender.Team), defender.Type),
		}
	}
	return AttackResult{
		Msg: fmt.Sprintf("%s %s hit %s %s for %d", teamName(state, attacker.Team), attacker.Type, teamName(state, defender.Team), defender.Type, attacker.Damage),
	}
}

// AttackBuilding наносит удар по вражескому зданию.
// Разрушенное здание удаляется из состояния.
func AttackBuilding(state *domain.GameState, attacker *domain.Unit, defender *domain.Building) AttackResult {
	destroyed := defender.TakeDamage(attacker.Damage)
	if destroyed {
		state.RemoveBuilding(defender.ID)
		return AttackResult{
			Killed: true,
			Msg:    fmt.Sprintf("%s %s destroyed %s %s", teamName(state, attacker.Team), attacker.Type, teamName(state, defender.Team), defender.Type),
		}
	}
	return AttackResult{
		Msg: fmt.Sprintf("%s %s hit %s %s for %d", teamName(state, attacker.Team), attacker.Type, teamName(state, defender.Team), defender.Type, attacker.Damage),
	}
}

// CapitalProtected сообщает, прикрыта ли столица живым юнитом владельца
// на соседнем тайле. Прикрытую столицу атаковать нельзя.
func CapitalProtected(state *domain.GameState, capital *domain.Building) bool {
	if capital.Type != domain.BuildingCapital {
		return false
	}
	for _, u := range state.UnitsOf(capital.Team) {
		if u.Pos.Dist(capital.Pos) <= 1 {
			return true
		}
	}
	return false
}

func teamName(state *domain.GameState, id domain.TeamID) string {
	if t := state.Team(id); t != nil {
		return t.Name
	}
	return fmt.Sprintf("team %d", id)
}
