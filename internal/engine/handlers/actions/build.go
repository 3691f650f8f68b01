package actions

import (
	"fmt"
	"strings"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// HandleBuild размещает новое здание на разведанном тайле.
//
// Правила размещения: тайл должен быть сушей, свободным и ранее
// разведанным владельцем. Шахта строится только на граните. Новая
// столица обязана отстоять от любой существующей не меньше чем на
// CapitalMinDistance тайлов.
func HandleBuild(ctx handlers.Context, p api.BuildPayload) (handlers.Result, error) {
	buildingType := domain.BuildingType(strings.ToLower(p.BuildingType))
	if !domain.KnownBuildingType(buildingType) {
		return handlers.EmptyResult(), fmt.Errorf("unknown building type %q", p.BuildingType)
	}

	target := domain.Position{X: p.X, Y: p.Y}
	if !ctx.State.Grid.InBounds(target) || !ctx.State.Grid.At(target).IsLand() {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"tile (%d,%d) cannot hold a building", p.X, p.Y)
	}
	if !ctx.Team.Fog.IsSeen(target) {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeNotRevealed,
			"tile (%d,%d) has not been revealed by %s", p.X, p.Y, ctx.Team.Name)
	}
	if ctx.State.IsOccupied(target) {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeTargetOccupied,
			"tile (%d,%d) is occupied", p.X, p.Y)
	}
	if ctx.State.PickupAt(target) != nil {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"tile (%d,%d) holds a pickup", p.X, p.Y)
	}

	if buildingType == domain.BuildingMine && ctx.State.Grid.At(target) != domain.TerrainGranite {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInvalidPlacement,
			"mine requires granite, (%d,%d) is %s", p.X, p.Y, ctx.State.Grid.At(target))
	}

	if buildingType == domain.BuildingCapital {
		for _, b := range ctx.State.Buildings {
			if b.Type != domain.BuildingCapital {
				continue
			}
			if d := target.Dist(b.Pos); d < domain.CapitalMinDistance {
				return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeTooClose,
					"capital at distance %d, minimum is %d", d, domain.CapitalMinDistance)
			}
		}
	}

	cost := domain.BuildingStatsFor(buildingType).Cost
	if !ctx.Team.CanAfford(cost) {
		return handlers.EmptyResult(), domain.NewActionError(domain.ErrCodeInsufficientFunds,
			"%s costs %d, %s has %d", buildingType, cost, ctx.Team.Name, ctx.Team.Gold)
	}

	ctx.Team.Spend(cost)
	b := domain.NewBuilding(ctx.State.AllocID(domain.KindBuilding, ctx.Team.ID), buildingType, ctx.Team.ID, target)
	ctx.State.Buildings = append(ctx.State.Buildings, b)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s built %s at (%d,%d) for %d gold", ctx.Team.Name, buildingType, p.X, p.Y, cost),
		MsgType: "INFO",
	}, nil
}
