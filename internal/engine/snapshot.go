package engine

import (
	"fmt"
	"sort"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/fog"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
	"github.com/Liam-made-young/REPUBLIC/pkg/terrain"
)

// BuildSnapshot сериализует состояние в канонической форме.
//
// Канонический порядок — основа сходимости: сущности идут в порядке
// создания, разведанные тайлы отсортированы (Y, затем X). Два движка
// в одинаковом состоянии выдают байт-в-байт одинаковый снапшот.
// Карта не сериализуется: реплика регенерирует её из сида.
func (e *Engine) BuildSnapshot(seq uint64) *api.FullSnapshot {
	s := e.State
	snap := &api.FullSnapshot{
		Seed:       s.Seed,
		Width:      s.Grid.Width,
		Height:     s.Grid.Height,
		Turn:       s.Turn,
		Active:     uint8(s.Active),
		Phase:      s.Phase.String(),
		Winner:     uint8(s.Winner),
		Draw:       s.Draw,
		Seq:        seq,
		NextSerial: s.NextSerial,
	}

	for _, t := range s.Teams {
		ts := api.TeamSnapshot{
			ID:         uint8(t.ID),
			Name:       t.Name,
			Gold:       t.Gold,
			Eliminated: t.Eliminated,
			Seen:       sortedSeen(t.Fog),
		}
		snap.Teams = append(snap.Teams, ts)
	}
	for _, u := range s.Units {
		idText, _ := u.ID.MarshalText()
		snap.Units = append(snap.Units, api.UnitSnapshot{
			ID:         string(idText),
			Type:       string(u.Type),
			Team:       uint8(u.Team),
			X:          u.Pos.X,
			Y:          u.Pos.Y,
			HP:         u.HP,
			HasActed:   u.HasActed,
			BudgetLeft: u.BudgetLeft,
		})
	}
	for _, b := range s.Buildings {
		idText, _ := b.ID.MarshalText()
		snap.Buildings = append(snap.Buildings, api.BuildingSnapshot{
			ID:           string(idText),
			Type:         string(b.Type),
			Team:         uint8(b.Team),
			X:            b.Pos.X,
			Y:            b.Pos.Y,
			HP:           b.HP,
			Level:        b.Level,
			SpawnedTotal: b.SpawnedTotal,
		})
	}
	for _, p := range s.Pickups {
		idText, _ := p.ID.MarshalText()
		snap.Pickups = append(snap.Pickups, api.PickupSnapshot{
			ID:   string(idText),
			Kind: string(p.Kind),
			X:    p.Pos.X,
			Y:    p.Pos.Y,
		})
	}
	return snap
}

// RestoreState восстанавливает состояние партии из снапшота.
// Видимость пересчитывается заново; разведанные тайлы берутся из
// снапшота как есть.
func RestoreState(snap *api.FullSnapshot) (*domain.GameState, error) {
	grid := terrain.Generate(snap.Seed, snap.Width, snap.Height)

	var names []string
	for _, t := range snap.Teams {
		names = append(names, t.Name)
	}
	state := domain.NewGameState(grid, snap.Seed, names)
	state.Turn = snap.Turn
	state.Active = domain.TeamID(snap.Active)
	state.Winner = domain.TeamID(snap.Winner)
	state.Draw = snap.Draw
	state.NextSerial = snap.NextSerial

	phase, err := parsePhase(snap.Phase)
	if err != nil {
		return nil, err
	}
	state.Phase = phase

	for i, ts := range snap.Teams {
		team := state.Teams[i]
		team.Gold = ts.Gold
		team.Eliminated = ts.Eliminated
		for _, p := range ts.Seen {
			team.Fog.Seen[domain.Position{X: p.X, Y: p.Y}] = true
		}
	}

	for _, us := range snap.Units {
		id, err := parseSnapshotID(us.ID)
		if err != nil {
			return nil, err
		}
		u := domain.NewUnit(id, domain.UnitType(us.Type), domain.TeamID(us.Team),
			domain.Position{X: us.X, Y: us.Y})
		u.HP = us.HP
		u.HasActed = us.HasActed
		u.BudgetLeft = us.BudgetLeft
		state.Units = append(state.Units, u)
	}
	for _, bs := range snap.Buildings {
		id, err := parseSnapshotID(bs.ID)
		if err != nil {
			return nil, err
		}
		b := domain.NewBuilding(id, domain.BuildingType(bs.Type), domain.TeamID(bs.Team),
			domain.Position{X: bs.X, Y: bs.Y})
		b.HP = bs.HP
		b.Level = bs.Level
		b.SpawnedTotal = bs.SpawnedTotal
		state.Buildings = append(state.Buildings, b)
	}
	for _, ps := range snap.Pickups {
		id, err := parseSnapshotID(ps.ID)
		if err != nil {
			return nil, err
		}
		state.Pickups = append(state.Pickups, &domain.Pickup{
			ID:   id,
			Kind: domain.PickupKind(ps.Kind),
			Pos:  domain.Position{X: ps.X, Y: ps.Y},
		})
	}

	fog.RecomputeAll(state)
	return state, nil
}

func sortedSeen(f *domain.FogState) []api.PosSnapshot {
	out := make([]api.PosSnapshot, 0, len(f.Seen))
	for p := range f.Seen {
		out = append(out, api.PosSnapshot{X: p.X, Y: p.Y})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func parsePhase(s string) (domain.Phase, error) {
	switch s {
	case domain.PhaseWaiting.String():
		return domain.PhaseWaiting, nil
	case domain.PhaseResolving.String():
		return domain.PhaseResolving, nil
	case domain.PhaseEnded.String():
		return domain.PhaseEnded, nil
	default:
		return domain.PhaseWaiting, fmt.Errorf("unknown phase %q in snapshot", s)
	}
}

func parseSnapshotID(s string) (domain.EntityID, error) {
	var id domain.EntityID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return domain.NilEntityID, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return id, nil
}
