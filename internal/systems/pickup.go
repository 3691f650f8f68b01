package systems

import "github.com/Liam-made-young/REPUBLIC/internal/domain"

// CollectPickup подбирает ресурс на тайле юнита, если он там есть.
// Золото зачисляется владельцу юнита. Возвращает номинал (0 — тайл пуст).
func CollectPickup(state *domain.GameState, unit *domain.Unit) int {
	p := state.PickupAt(unit.Pos)
	if p == nil {
		return 0
	}
	value := p.Value()
	state.RemovePickup(p.ID)
	if team := state.Team(unit.Team); team != nil {
		team.Credit(value)
	}
	return value
}
