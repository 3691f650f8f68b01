package engine

import (
	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// BuildViewFor создает персональный "снимок" партии для команды-наблюдателя.
//
// Наблюдатель получает только свои два множества тумана: разведанную
// местность и сущности на видимых прямо сейчас тайлах. Свои юниты и
// здания показываются всегда. Сырое глобальное состояние отсюда не
// утекает — это единственный читающий интерфейс для UI.
func (e *Engine) BuildViewFor(teamID domain.TeamID) *api.ClientView {
	s := e.State
	team := s.Team(teamID)
	if team == nil {
		return nil
	}

	view := &api.ClientView{
		Turn:   s.Turn,
		Active: uint8(s.Active),
		Phase:  s.Phase.String(),
		Me: api.TeamView{
			ID:         uint8(team.ID),
			Name:       team.Name,
			Color:      team.Color.RGB,
			Gold:       team.Gold,
			Eliminated: team.Eliminated,
		},
		Grid: api.GridMeta{Width: s.Grid.Width, Height: s.Grid.Height},
	}

	for y := 0; y < s.Grid.Height; y++ {
		for x := 0; x < s.Grid.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if !team.Fog.IsSeen(p) {
				continue
			}
			view.Map = append(view.Map, api.TileView{
				X: x, Y: y,
				Terrain:   s.Grid.At(p).String(),
				IsVisible: team.Fog.IsVisible(p),
			})
		}
	}

	for _, u := range s.Units {
		if u.IsDead() {
			continue
		}
		if u.Team != teamID && !team.Fog.IsVisible(u.Pos) {
			continue
		}
		idText, _ := u.ID.MarshalText()
		view.Units = append(view.Units, api.UnitView{
			ID:   string(idText),
			Type: string(u.Type),
			Team: uint8(u.Team),
			X:    u.Pos.X, Y: u.Pos.Y,
			HP: u.HP, MaxHP: u.MaxHP,
			HasActed:   u.HasActed,
			BudgetLeft: u.BudgetLeft,
		})
	}

	for _, b := range s.Buildings {
		// Здания статичны: однажды разведанное здание остаётся на карте
		// наблюдателя, даже когда тайл ушёл из прямой видимости.
		if b.Team != teamID && !team.Fog.IsSeen(b.Pos) {
			continue
		}
		idText, _ := b.ID.MarshalText()
		view.Buildings = append(view.Buildings, api.BuildingView{
			ID:   string(idText),
			Type: string(b.Type),
			Team: uint8(b.Team),
			X:    b.Pos.X, Y: b.Pos.Y,
			HP: b.HP, MaxHP: b.MaxHP,
			Level: b.Level,
		})
	}

	for _, p := range s.Pickups {
		if !team.Fog.IsVisible(p.Pos) {
			continue
		}
		idText, _ := p.ID.MarshalText()
		view.Pickups = append(view.Pickups, api.PickupView{
			ID:   string(idText),
			Kind: string(p.Kind),
			X:    p.Pos.X, Y: p.Pos.Y,
		})
	}

	return view
}
