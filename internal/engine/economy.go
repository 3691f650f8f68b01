package engine

import (
	"math/rand"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// runMineIncome начисляет доход шахт команды в начале её хода.
func runMineIncome(state *domain.GameState, team *domain.Team) {
	for _, b := range state.BuildingsOf(team.ID) {
		if income := b.Income(); income > 0 {
			team.Credit(income)
		}
	}
}

// turnRNG — генератор экономики для конкретного хода.
// Зерно выводится из сида партии и номера хода, поэтому реплика,
// восстановленная из снапшота, продолжает ту же последовательность
// без передачи состояния генератора по сети.
func turnRNG(state *domain.GameState) *rand.Rand {
	seed := state.Seed ^ int64(uint64(state.Turn)*0x9E3779B97F4A7C15)
	return rand.New(rand.NewSource(seed))
}

// topUpPickups доводит число ресурсов на карте до целевой плотности
// (один на PickupSpawnRatio тайлов). Кандидаты собираются в порядке
// сканирования карты, выбор — из детерминированного генератора хода.
func topUpPickups(state *domain.GameState) {
	target := state.Grid.Width * state.Grid.Height / domain.PickupSpawnRatio
	missing := target - len(state.Pickups)
	if missing <= 0 {
		return
	}

	var candidates []domain.Position
	for y := 0; y < state.Grid.Height; y++ {
		for x := 0; x < state.Grid.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if !state.Grid.At(p).IsLand() {
				continue
			}
			if state.IsOccupied(p) || state.PickupAt(p) != nil {
				continue
			}
			candidates = append(candidates, p)
		}
	}

	rng := turnRNG(state)
	for i := 0; i < missing && len(candidates) > 0; i++ {
		idx := rng.Intn(len(candidates))
		pos := candidates[idx]
		candidates = append(candidates[:idx], candidates[idx+1:]...)

		rare := rng.Float64() < domain.PickupRareChance
		kind := pickupKindFor(state.Grid.At(pos), rare)

		id := state.AllocID(domain.KindPickup, domain.NeutralOwner)
		state.Pickups = append(state.Pickups, &domain.Pickup{ID: id, Kind: kind, Pos: pos})
	}
}

// pickupKindFor выбирает вид ресурса: курицы на траве, золото на граните.
func pickupKindFor(terrain domain.TerrainKind, rare bool) domain.PickupKind {
	if terrain == domain.TerrainGranite {
		if rare {
			return domain.PickupShinyGold
		}
		return domain.PickupGold
	}
	if rare {
		return domain.PickupBlackChicken
	}
	return domain.PickupChicken
}
