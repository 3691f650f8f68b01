package actions

import (
	"fmt"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// HandleUpgrade поднимает здание до первого уровня.
// Стоимость списывается сразу; повторный апгрейд — ошибка AlreadyUpgraded,
// уровень при этом не меняется.
func HandleUpgrade(ctx handlers.Context, p api.UpgradePayload) (handlers.Result, error) {
	id, err := parseEntityID(p.BuildingID)
	if err != nil {
		return handlers.EmptyResult(), fmt.Errorf("bad building id: %w", err)
	}

	b := ctx.State.FindBuilding(id)
	if b == nil || b.Team != ctx.Team.ID {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeNotOwner,
			"building %s does not belong to %s", p.BuildingID, ctx.Team.Name)
	}
	if b.Level >= 1 {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeAlreadyUpgraded,
			"building %s is already at level %d", b.ID, b.Level)
	}

	cost := domain.BuildingStatsFor(b.Type).UpgradeCost
	if !ctx.Team.CanAfford(cost) {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInsufficientFunds,
			"upgrade costs %d, %s has %d", cost, ctx.Team.Name, ctx.Team.Gold)
	}

	ctx.Team.Spend(cost)
	b.Level = 1

	return handlers.Result{
		Msg:     fmt.Sprintf("%s upgraded %s at (%d,%d)", ctx.Team.Name, b.Type, b.Pos.X, b.Pos.Y),
		MsgType: "INFO",
	}, nil
}
