package engine

import (
	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/fog"
	"github.com/Liam-made-young/REPUBLIC/internal/systems"
)

// runSeerMoves выполняет автоход провидцев команды до открытия её фазы
// действий. Эвристика полностью детерминирована текущим туманом войны:
// реплики вычисляют идентичный ход, не обмениваясь им по сети.
func runSeerMoves(state *domain.GameState, team *domain.Team) {
	for _, u := range state.UnitsOf(team.ID) {
		if !domain.StatsFor(u.Type).AutoExplore {
			continue
		}
		autoExplore(state, team, u)
	}
}

// autoExplore выбирает среди достижимых тайлов тот, чей диск обзора
// накрывает больше всего неразведанных тайлов. Ничьи разрешаются в пользу
// меньшего Y, затем меньшего X. Нулевой лучший счёт — юнит стоит на месте.
func autoExplore(state *domain.GameState, team *domain.Team, seer *domain.Unit) {
	best := seer.Pos
	bestScore := 0

	budget := seer.BudgetLeft
	for dy := -budget; dy <= budget; dy++ {
		for dx := -budget; dx <= budget; dx++ {
			p := seer.Pos.Shift(dx, dy)
			if p == seer.Pos {
				continue
			}
			if !state.Grid.InBounds(p) || !state.Grid.At(p).IsLand() {
				continue
			}
			if state.IsOccupied(p) {
				continue
			}
			// Обход идёт по возрастанию Y, затем X, поэтому строгое
			// сравнение само разрешает ничьи в пользу меньшего Y, затем X.
			score := fog.UnseenInDisk(state, team, p, seer.Sight)
			if score > bestScore {
				best = p
				bestScore = score
			}
		}
	}

	if bestScore == 0 {
		seer.HasActed = true
		return
	}

	seer.Pos = best
	seer.BudgetLeft = 0
	seer.HasActed = true
	systems.CollectPickup(state, seer)
	fog.Reveal(state, team, seer.Pos, seer.Sight)
}
