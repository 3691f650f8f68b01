package actions

import (
	"fmt"
	"strings"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers"
	"github.com/Liam-made-young/REPUBLIC/internal/systems"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// HandleSpawn порождает юнит из столицы на свободный соседний тайл.
//
// Столица порождает не больше трёх юнитов за партию. Апгрейд столицы
// вдвое удешевляет спавн. Свежепорождённый юнит не действует до
// следующего хода владельца.
func HandleSpawn(ctx handlers.Context, p api.SpawnPayload) (handlers.Result, error) {
	id, err := parseEntityID(p.CapitalID)
	if err != nil {
		return handlers.EmptyResult(), fmt.Errorf("bad capital id: %w", err)
	}

	capital := ctx.State.FindBuilding(id)
	if capital == nil || capital.Team != ctx.Team.ID {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeNotOwner,
			"capital %s does not belong to %s", p.CapitalID, ctx.Team.Name)
	}
	if capital.Type != domain.BuildingCapital {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"building %s is not a capital", capital.ID)
	}
	if !capital.CanSpawn() {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"capital %s has no spawns left", capital.ID)
	}

	unitType := domain.UnitType(strings.ToLower(p.UnitType))
	if !domain.KnownUnitType(unitType) {
		return handlers.EmptyResult(), fmt.Errorf("unknown unit type %q", p.UnitType)
	}

	cost := capital.SpawnCost(unitType)
	if !ctx.Team.CanAfford(cost) {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInsufficientFunds,
			"%s costs %d, %s has %d", unitType, cost, ctx.Team.Name, ctx.Team.Gold)
	}

	pos, ok := spawnTile(ctx.State, capital.Pos)
	if !ok {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeTargetOccupied,
			"no free tile around capital %s", capital.ID)
	}

	ctx.Team.Spend(cost)
	unit := domain.NewUnit(ctx.State.AllocID(domain.KindUnit, ctx.Team.ID), unitType, ctx.Team.ID, pos)
	unit.HasActed = true
	unit.BudgetLeft = 0
	ctx.State.Units = append(ctx.State.Units, unit)

	capital.SpawnedTotal++

	systems.CollectPickup(ctx.State, unit)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s spawned %s at (%d,%d) for %d gold", ctx.Team.Name, unitType, pos.X, pos.Y, cost),
		MsgType: "INFO",
	}, nil
}

// spawnTile ищет свободный соседний тайл суши вокруг столицы.
// Обход в фиксированном порядке (dx по возрастанию, затем dy), чтобы
// все реплики выбрали один и тот же тайл.
func spawnTile(state *domain.GameState, capital domain.Position) (domain.Position, bool) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := capital.Shift(dx, dy)
			if !state.Grid.InBounds(p) || !state.Grid.At(p).IsLand() {
				continue
			}
			if state.IsOccupied(p) {
				continue
			}
			return p, true
		}
	}
	return domain.Position{}, false
}
