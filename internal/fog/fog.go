// Package fog пересчитывает туман войны для команд.
// Видимость — объединение квадратных радиусов обзора (метрика Чебышёва)
// всех живых юнитов и зданий команды. Разведанные тайлы не забываются.
package fog

import (
	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// Recompute обновляет туман команды по текущему состоянию.
// Visible строится заново, Seen только растёт.
func Recompute(state *domain.GameState, team *domain.Team) {
	team.Fog.Visible = make(map[domain.Position]bool)

	for _, u := range state.Units {
		if u.Team != team.ID || u.IsDead() {
			continue
		}
		revealDisk(state, team, u.Pos, u.Sight)
	}
	for _, b := range state.Buildings {
		if b.Team != team.ID {
			continue
		}
		revealDisk(state, team, b.Pos, b.Sight())
	}
}

// RecomputeAll обновляет туман всех неустранённых команд.
func RecomputeAll(state *domain.GameState) {
	for _, t := range state.Teams {
		if t.Eliminated {
			continue
		}
		Recompute(state, t)
	}
}

// Reveal помечает диск обзора разведанным без пересчёта.
// Используется автоисследованием провидца и при старте партии.
func Reveal(state *domain.GameState, team *domain.Team, center domain.Position, radius int) {
	revealDisk(state, team, center, radius)
}

func revealDisk(state *domain.GameState, team *domain.Team, center domain.Position, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := center.Shift(dx, dy)
			if !state.Grid.InBounds(p) {
				continue
			}
			team.Fog.Visible[p] = true
			team.Fog.Seen[p] = true
		}
	}
}

// UnseenInDisk считает неразведанные тайлы в диске обзора вокруг center.
func UnseenInDisk(state *domain.GameState, team *domain.Team, center domain.Position, radius int) int {
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := center.Shift(dx, dy)
			if !state.Grid.InBounds(p) {
				continue
			}
			if !team.Fog.IsSeen(p) {
				n++
			}
		}
	}
	return n
}
