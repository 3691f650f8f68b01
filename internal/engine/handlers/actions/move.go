package actions

import (
	"fmt"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers"
	"github.com/Liam-made-young/REPUBLIC/internal/systems"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// HandleMove перемещает юнит либо атакует цель на тайле назначения.
//
// Ход на тайл врага — это атака: урон снимается с защитника, убитый
// удаляется и атакующий занимает тайл. Атака без убийства завершает
// действие на месте. Танк после убийства сохраняет остаток бюджета
// хода и может продолжить цепочку следующими командами MOVE.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	id, err := parseEntityID(p.UnitID)
	if err != nil {
		return handlers.EmptyResult(), fmt.Errorf("bad unit id: %w", err)
	}

	unit := ctx.State.FindUnit(id)
	if unit == nil || unit.Team != ctx.Team.ID {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeNotOwner,
			"unit %s does not belong to %s", p.UnitID, ctx.Team.Name)
	}
	if unit.HasActed {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeAlreadyActed,
			"unit %s already acted this turn", unit.ID)
	}

	target := domain.Position{X: p.X, Y: p.Y}
	if !ctx.State.Grid.InBounds(target) || !ctx.State.Grid.At(target).IsLand() {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"tile (%d,%d) is not passable", p.X, p.Y)
	}
	dist := unit.Pos.Dist(target)
	if dist == 0 {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"unit %s already stands on (%d,%d)", unit.ID, p.X, p.Y)
	}
	if dist > unit.BudgetLeft {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeOutOfRange,
			"distance %d exceeds movement budget %d", dist, unit.BudgetLeft)
	}

	if enemy := ctx.State.UnitAt(target); enemy != nil {
		if enemy.Team == ctx.Team.ID {
			return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeTargetOccupied,
				"tile (%d,%d) is held by a friendly unit", p.X, p.Y)
		}
		return resolveAttack(ctx, unit, dist, systems.AttackUnit(ctx.State, unit, enemy), target)
	}

	if b := ctx.State.BuildingAt(target); b != nil {
		if b.Team == ctx.Team.ID {
			return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeTargetOccupied,
				"tile (%d,%d) is held by a friendly building", p.X, p.Y)
		}
		if systems.CapitalProtected(ctx.State, b) {
			return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeTargetOccupied,
				"capital at (%d,%d) is protected by a defender", p.X, p.Y)
		}
		return resolveAttack(ctx, unit, dist, systems.AttackBuilding(ctx.State, unit, b), target)
	}

	// Свободный тайл: обычное перемещение, ход юнита исчерпан.
	unit.Pos = target
	unit.BudgetLeft = 0
	unit.HasActed = true
	msg := ""
	if gold := systems.CollectPickup(ctx.State, unit); gold > 0 {
		msg = fmt.Sprintf("%s %s collected %d gold", ctx.Team.Name, unit.Type, gold)
	}
	return handlers.Result{Msg: msg, MsgType: "INFO"}, nil
}

// resolveAttack завершает действие после удара.
// Убийство освобождает тайл — атакующий занимает его; танк при этом
// сохраняет неизрасходованный остаток бюджета.
func resolveAttack(ctx handlers.Context, unit *domain.Unit, dist int, res systems.AttackResult, target domain.Position) (handlers.Result, error) {
	if !res.Killed {
		unit.BudgetLeft = 0
		unit.HasActed = true
		return handlers.Result{Msg: res.Msg, MsgType: "COMBAT"}, nil
	}

	unit.Pos = target
	systems.CollectPickup(ctx.State, unit)

	remaining := unit.BudgetLeft - dist
	if domain.StatsFor(unit.Type).ChainAttack && remaining > 0 {
		unit.BudgetLeft = remaining
	} else {
		unit.BudgetLeft = 0
		unit.HasActed = true
	}
	return handlers.Result{Msg: res.Msg, MsgType: "COMBAT"}, nil
}
