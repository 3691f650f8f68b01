package engine

import (
	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/fog"
	"github.com/Liam-made-young/REPUBLIC/pkg/terrain"
)

// buildWorld создаёт стартовое состояние партии: карта из сида,
// команды со стартовой казной и по столице на команду.
// Полностью детерминированно: реплики строят байт-в-байт тот же мир.
func buildWorld(cfg Config) *domain.GameState {
	grid := terrain.Generate(cfg.Seed, cfg.Width, cfg.Height)
	state := domain.NewGameState(grid, cfg.Seed, cfg.TeamNames)

	for _, t := range state.Teams {
		t.Gold = cfg.StartingGold
	}

	placeCapitals(state)
	fog.RecomputeAll(state)
	return state
}

// placeCapitals расставляет столицы на свободной траве, максимально
// удалённо друг от друга. Правило минимальной дистанции (CapitalMinDistance)
// действует для столиц, построенных игроками; стартовая расстановка просто
// максимизирует разнос, чтобы партия стартовала на любой карте.
func placeCapitals(state *domain.GameState) {
	candidates := terrain.LandTiles(state.Grid)
	if len(candidates) == 0 {
		return
	}

	var placed []domain.Position
	for _, team := range state.Teams {
		pos, ok := findCapitalSpot(candidates, placed)
		if !ok {
			continue
		}
		placed = append(placed, pos)

		id := state.AllocID(domain.KindBuilding, team.ID)
		state.Buildings = append(state.Buildings,
			domain.NewBuilding(id, domain.BuildingCapital, team.ID, pos))
	}
}

// findCapitalSpot ищет тайл с максимальной минимальной дистанцией до уже
// размещённых столиц. Обход кандидатов идёт в порядке сканирования карты,
// поэтому результат детерминирован.
func findCapitalSpot(candidates, placed []domain.Position) (domain.Position, bool) {
	if len(placed) == 0 {
		// Первая столица — первый подходящий тайл не у самого края.
		for _, p := range candidates {
			if p.X >= 2 && p.Y >= 2 {
				return p, true
			}
		}
		return candidates[0], true
	}

	best := domain.Position{}
	bestScore := -1
	for _, p := range candidates {
		score := minDistTo(p, placed)
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	if bestScore < 0 {
		return domain.Position{}, false
	}
	// Порог столиц соблюдён либо карта слишком мала — берём лучшее из возможного.
	return best, true
}

func minDistTo(p domain.Position, others []domain.Position) int {
	min := -1
	for _, o := range others {
		d := p.Dist(o)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}
