package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/fog"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// flatState builds a fully revealed all-grass arena so tests control
// every placement explicitly.
func flatState(t *testing.T, size int, teams ...string) *domain.GameState {
	t.Helper()
	grid := domain.NewGrid(size, size)
	state := domain.NewGameState(grid, 42, teams)
	for _, team := range state.Teams {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				team.Fog.Seen[domain.Position{X: x, Y: y}] = true
			}
		}
	}
	return state
}

func addUnit(state *domain.GameState, team domain.TeamID, typ domain.UnitType, x, y int) *domain.Unit {
	u := domain.NewUnit(state.AllocID(domain.KindUnit, team), typ, team, domain.Position{X: x, Y: y})
	state.Units = append(state.Units, u)
	return u
}

func addBuilding(state *domain.GameState, team domain.TeamID, typ domain.BuildingType, x, y int) *domain.Building {
	b := domain.NewBuilding(state.AllocID(domain.KindBuilding, team), typ, team, domain.Position{X: x, Y: y})
	state.Buildings = append(state.Buildings, b)
	return b
}

func idString(t *testing.T, id domain.EntityID) string {
	t.Helper()
	b, err := id.MarshalText()
	if err != nil {
		t.Fatalf("marshal id: %v", err)
	}
	return string(b)
}

func mustApply(t *testing.T, e *Engine, cmd domain.Command) Delta {
	t.Helper()
	d, err := e.Apply(cmd)
	if err != nil {
		t.Fatalf("apply %s: %v", cmd.Action, err)
	}
	return d
}

func command(t *testing.T, action domain.ActionType, team domain.TeamID, payload any) domain.Command {
	t.Helper()
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		raw = b
	}
	return domain.Command{Action: action, Team: team, Payload: raw}
}

func TestSpawnGoldScenario(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	capital := addBuilding(state, 0, domain.BuildingCapital, 5, 5)
	state.Teams[0].Gold = 12
	e := NewFromState(state)

	spawn := func() error {
		_, err := e.Apply(command(t, domain.ActionSpawn, 0, api.SpawnPayload{
			CapitalID: idString(t, capital.ID),
			UnitType:  "warrior",
		}))
		return err
	}

	if err := spawn(); err != nil {
		t.Fatalf("first spawn: %v", err)
	}
	if got := state.Teams[0].Gold; got != 7 {
		t.Errorf("gold after first spawn = %d, want 7", got)
	}
	if err := spawn(); err != nil {
		t.Fatalf("second spawn: %v", err)
	}
	if got := state.Teams[0].Gold; got != 2 {
		t.Errorf("gold after second spawn = %d, want 2", got)
	}

	err := spawn()
	if !domain.IsActionCode(err, domain.ErrCodeInsufficientFunds) {
		t.Fatalf("third spawn error = %v, want INSUFFICIENT_FUNDS", err)
	}
	if got := state.Teams[0].Gold; got != 2 {
		t.Errorf("gold after failed spawn = %d, want 2", got)
	}
	if got := len(state.UnitsOf(0)); got != 2 {
		t.Errorf("units spawned = %d, want 2", got)
	}
}

func TestSpawnLimitPerCapital(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	capital := addBuilding(state, 0, domain.BuildingCapital, 5, 5)
	state.Teams[0].Gold = 100
	e := NewFromState(state)

	cmd := command(t, domain.ActionSpawn, 0, api.SpawnPayload{
		CapitalID: idString(t, capital.ID),
		UnitType:  "warrior",
	})
	for i := 0; i < domain.CapitalMaxSpawns; i++ {
		mustApply(t, e, cmd)
	}
	_, err := e.Apply(cmd)
	if !domain.IsActionCode(err, domain.ErrCodeInvalidPlacement) {
		t.Fatalf("spawn over limit error = %v, want INVALID_PLACEMENT", err)
	}
}

func TestCombatDamageAndKill(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	attacker := addUnit(state, 0, domain.UnitWarrior, 5, 5) // damage 5
	defender := addUnit(state, 1, domain.UnitSwordsman, 6, 5) // hp 15
	e := NewFromState(state)

	move := command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, attacker.ID), X: 6, Y: 5,
	})
	mustApply(t, e, move)

	if defender.HP != 10 {
		t.Errorf("defender hp = %d, want 10", defender.HP)
	}
	if attacker.Pos != (domain.Position{X: 5, Y: 5}) {
		t.Errorf("non-kill attack must leave attacker in place, got %v", attacker.Pos)
	}
	if !attacker.HasActed {
		t.Errorf("attacker must be spent after an attack")
	}

	// Добиваем: два хода спустя тот же воин убивает раненого мечника.
	defender.HP = 5
	attacker.ResetTurn()
	mustApply(t, e, move)

	if state.FindUnit(defender.ID) != nil {
		t.Errorf("killed defender must be removed from state")
	}
	if attacker.Pos != (domain.Position{X: 6, Y: 5}) {
		t.Errorf("killer must occupy the freed tile, got %v", attacker.Pos)
	}
}

func TestTankChainAttack(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	tank := addUnit(state, 0, domain.UnitTank, 5, 5) // move 4, damage 6
	first := addUnit(state, 1, domain.UnitRunner, 6, 5)  // hp 5
	second := addUnit(state, 1, domain.UnitRunner, 8, 5) // hp 5
	e := NewFromState(state)

	mustApply(t, e, command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, tank.ID), X: 6, Y: 5,
	}))

	if state.FindUnit(first.ID) != nil {
		t.Fatalf("first defender must die")
	}
	if tank.HasActed {
		t.Fatalf("tank must keep acting after a kill")
	}
	if tank.BudgetLeft != 3 {
		t.Fatalf("tank budget = %d, want 3", tank.BudgetLeft)
	}

	mustApply(t, e, command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, tank.ID), X: 8, Y: 5,
	}))

	if state.FindUnit(second.ID) != nil {
		t.Errorf("chained defender must die")
	}
	if tank.Pos != (domain.Position{X: 8, Y: 5}) {
		t.Errorf("tank pos = %v, want (8,5)", tank.Pos)
	}
	if tank.BudgetLeft != 1 {
		t.Errorf("tank budget after chain = %d, want 1", tank.BudgetLeft)
	}
}

func TestNonTankStopsOnKill(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	warrior := addUnit(state, 0, domain.UnitWarrior, 5, 5)
	victim := addUnit(state, 1, domain.UnitRunner, 6, 5) // hp 5 = warrior damage
	e := NewFromState(state)

	mustApply(t, e, command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, warrior.ID), X: 6, Y: 5,
	}))

	if state.FindUnit(victim.ID) != nil {
		t.Fatalf("victim must die")
	}
	if !warrior.HasActed || warrior.BudgetLeft != 0 {
		t.Errorf("non-tank killer must stop: hasActed=%v budget=%d", warrior.HasActed, warrior.BudgetLeft)
	}
}

func TestMoveValidation(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	unit := addUnit(state, 0, domain.UnitShieldman, 5, 5) // move 2
	enemy := addUnit(state, 1, domain.UnitWarrior, 10, 10)
	e := NewFromState(state)

	cases := []struct {
		name string
		team domain.TeamID
		p    api.MovePayload
		code domain.ActionCode
	}{
		{"out of range", 0, api.MovePayload{UnitID: idString(t, unit.ID), X: 9, Y: 5}, domain.ErrCodeOutOfRange},
		{"not owner", 0, api.MovePayload{UnitID: idString(t, enemy.ID), X: 11, Y: 10}, domain.ErrCodeNotOwner},
		{"not your turn", 1, api.MovePayload{UnitID: idString(t, enemy.ID), X: 11, Y: 10}, domain.ErrCodeNotYourTurn},
	}
	for _, tc := range cases {
		_, err := e.Apply(command(t, domain.ActionMove, tc.team, tc.p))
		if !domain.IsActionCode(err, tc.code) {
			t.Errorf("%s: err = %v, want %s", tc.name, err, tc.code)
		}
	}

	// Water is impassable.
	state.Grid.Set(6, 5, domain.TerrainWater)
	_, err := e.Apply(command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, unit.ID), X: 6, Y: 5,
	}))
	if !domain.IsActionCode(err, domain.ErrCodeInvalidPlacement) {
		t.Errorf("move onto water: err = %v, want INVALID_PLACEMENT", err)
	}
}

func TestUnitActsOncePerTurn(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	unit := addUnit(state, 0, domain.UnitWarrior, 5, 5)
	e := NewFromState(state)

	mustApply(t, e, command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, unit.ID), X: 6, Y: 5,
	}))
	_, err := e.Apply(command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, unit.ID), X: 7, Y: 5,
	}))
	if !domain.IsActionCode(err, domain.ErrCodeAlreadyActed) {
		t.Errorf("second action err = %v, want ALREADY_ACTED", err)
	}
}

func TestCapitalTooClose(t *testing.T) {
	state := flatState(t, 30, "red", "blue")
	addBuilding(state, 0, domain.BuildingCapital, 5, 5)
	state.Teams[0].Gold = 100
	e := NewFromState(state)

	_, err := e.Apply(command(t, domain.ActionBuild, 0, api.BuildPayload{
		BuildingType: "capital", X: 5 + domain.CapitalMinDistance - 1, Y: 5,
	}))
	if !domain.IsActionCode(err, domain.ErrCodeTooClose) {
		t.Fatalf("close capital err = %v, want TOO_CLOSE", err)
	}

	mustApply(t, e, command(t, domain.ActionBuild, 0, api.BuildPayload{
		BuildingType: "capital", X: 5 + domain.CapitalMinDistance, Y: 5,
	}))
}

func TestBuildNotRevealed(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	state.Teams[0].Fog = domain.NewFogState() // ничего не разведано
	state.Teams[0].Gold = 100
	e := NewFromState(state)

	_, err := e.Apply(command(t, domain.ActionBuild, 0, api.BuildPayload{
		BuildingType: "hospital", X: 5, Y: 5,
	}))
	if !domain.IsActionCode(err, domain.ErrCodeNotRevealed) {
		t.Errorf("build in fog err = %v, want NOT_REVEALED", err)
	}
}

func TestMineRequiresGranite(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	state.Teams[0].Gold = 100
	state.Grid.Set(7, 7, domain.TerrainGranite)
	e := NewFromState(state)

	_, err := e.Apply(command(t, domain.ActionBuild, 0, api.BuildPayload{
		BuildingType: "mine", X: 5, Y: 5,
	}))
	if !domain.IsActionCode(err, domain.ErrCodeInvalidPlacement) {
		t.Fatalf("mine on grass err = %v, want INVALID_PLACEMENT", err)
	}

	mustApply(t, e, command(t, domain.ActionBuild, 0, api.BuildPayload{
		BuildingType: "mine", X: 7, Y: 7,
	}))
}

func TestMineIncome(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	addBuilding(state, 0, domain.BuildingCapital, 2, 2)
	addBuilding(state, 1, domain.BuildingCapital, 17, 17)
	state.Grid.Set(4, 2, domain.TerrainGranite)
	mine := addBuilding(state, 0, domain.BuildingMine, 4, 2)
	e := NewFromState(state)

	state.Teams[0].Gold = 0
	e.AdvanceTurn() // ход переходит к blue
	e.AdvanceTurn() // и обратно к red: доход шахты
	if got := state.Teams[0].Gold; got != 1 {
		t.Fatalf("gold after level-0 mine tick = %d, want 1", got)
	}

	mine.Level = 1
	e.AdvanceTurn()
	e.AdvanceTurn()
	if got := state.Teams[0].Gold; got != 3 {
		t.Fatalf("gold after level-1 mine tick = %d, want 3", got)
	}
}

func TestUpgrade(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	capital := addBuilding(state, 0, domain.BuildingCapital, 5, 5)
	state.Teams[0].Gold = 40
	e := NewFromState(state)

	up := command(t, domain.ActionUpgrade, 0, api.UpgradePayload{
		BuildingID: idString(t, capital.ID),
	})
	mustApply(t, e, up)
	if capital.Level != 1 {
		t.Fatalf("capital level = %d, want 1", capital.Level)
	}
	if got := state.Teams[0].Gold; got != 25 {
		t.Errorf("gold after upgrade = %d, want 25", got)
	}

	_, err := e.Apply(up)
	if !domain.IsActionCode(err, domain.ErrCodeAlreadyUpgraded) {
		t.Fatalf("re-upgrade err = %v, want ALREADY_UPGRADED", err)
	}
	if capital.Level != 1 {
		t.Errorf("failed upgrade must not change level, got %d", capital.Level)
	}

	// Апгрейд столицы вдвое удешевляет спавн (warrior 5 -> 3 с округлением вверх).
	if got := capital.SpawnCost(domain.UnitWarrior); got != 3 {
		t.Errorf("upgraded spawn cost = %d, want 3", got)
	}
}

func TestHealingOrderAndBudget(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	hospital := addBuilding(state, 0, domain.BuildingHospital, 5, 5)

	near := addUnit(state, 0, domain.UnitWarrior, 6, 5)
	far := addUnit(state, 0, domain.UnitWarrior, 7, 5)
	out := addUnit(state, 0, domain.UnitWarrior, 9, 5)
	near.HP = 5
	far.HP = 5
	out.HP = 5

	team := state.Teams[0]
	team.Gold = 4 // хватает на 3 очка ближнему и 1 дальнему

	runHealing(state, team)

	if near.HP != 8 {
		t.Errorf("near unit hp = %d, want 8", near.HP)
	}
	if far.HP != 6 {
		t.Errorf("far unit hp = %d, want 6 (partial heal)", far.HP)
	}
	if out.HP != 5 {
		t.Errorf("unit outside radius %d must not be healed, hp = %d", hospital.HealRadius(), out.HP)
	}
	if team.Gold != 0 {
		t.Errorf("gold after healing = %d, want 0", team.Gold)
	}
}

func TestHealingCapsAtMaxHP(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	addBuilding(state, 0, domain.BuildingHospital, 5, 5)
	u := addUnit(state, 0, domain.UnitWarrior, 6, 5)
	u.HP = 9 // не хватает 1 до максимума

	team := state.Teams[0]
	team.Gold = 10
	runHealing(state, team)

	if u.HP != u.MaxHP {
		t.Errorf("hp = %d, want %d", u.HP, u.MaxHP)
	}
	if team.Gold != 9 {
		t.Errorf("healing must charge only restored points, gold = %d, want 9", team.Gold)
	}
}

func TestEliminationAndVictory(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	addBuilding(state, 0, domain.BuildingCapital, 5, 5)
	// У blue ничего нет с самого начала.
	e := NewFromState(state)

	out := e.AdvanceTurn()
	if !state.Teams[1].Eliminated {
		t.Fatalf("team without assets must be eliminated")
	}
	if !out.Ended {
		t.Fatalf("game must end with one team left")
	}
	if out.Winner != 0 || out.Draw {
		t.Fatalf("outcome = %+v, want winner red", out)
	}
	if state.Phase != domain.PhaseEnded {
		t.Fatalf("phase = %v, want ENDED", state.Phase)
	}

	// Действия после конца партии отклоняются.
	_, err := e.Apply(command(t, domain.ActionEndTurn, 0, nil))
	if !domain.IsActionCode(err, domain.ErrCodeNotYourTurn) {
		t.Errorf("action after game over err = %v, want NOT_YOUR_TURN", err)
	}
}

func TestMutualDestructionDraw(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	e := NewFromState(state)

	out := e.AdvanceTurn()
	if !out.Ended || !out.Draw {
		t.Fatalf("outcome = %+v, want draw", out)
	}
}

func TestEliminatedTeamSkipped(t *testing.T) {
	state := flatState(t, 30, "red", "blue", "green")
	addBuilding(state, 0, domain.BuildingCapital, 2, 2)
	addBuilding(state, 2, domain.BuildingCapital, 25, 25)
	// blue без активов: выбывает и пропускается в ротации.
	e := NewFromState(state)

	out := e.AdvanceTurn()
	if out.Ended {
		t.Fatalf("two teams remain, game must continue")
	}
	if out.Active != 2 {
		t.Fatalf("active = %d, want 2 (blue skipped)", out.Active)
	}

	out = e.AdvanceTurn()
	if out.Active != 0 {
		t.Fatalf("active = %d, want 0", out.Active)
	}
}

func TestCapitalProtection(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	capital := addBuilding(state, 1, domain.BuildingCapital, 10, 10)
	addUnit(state, 1, domain.UnitWarrior, 11, 10) // защитник вплотную
	attacker := addUnit(state, 0, domain.UnitSwordsman, 9, 10)
	e := NewFromState(state)

	_, err := e.Apply(command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, attacker.ID), X: 10, Y: 10,
	}))
	if !domain.IsActionCode(err, domain.ErrCodeTargetOccupied) {
		t.Fatalf("protected capital err = %v, want TARGET_OCCUPIED", err)
	}
	if capital.HP != capital.MaxHP {
		t.Errorf("protected capital must take no damage")
	}
}

func TestPickupCollection(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	unit := addUnit(state, 0, domain.UnitWarrior, 5, 5)
	state.Pickups = append(state.Pickups, &domain.Pickup{
		ID:   state.AllocID(domain.KindPickup, domain.NeutralOwner),
		Kind: domain.PickupBlackChicken,
		Pos:  domain.Position{X: 6, Y: 5},
	})
	e := NewFromState(state)

	state.Teams[0].Gold = 0
	mustApply(t, e, command(t, domain.ActionMove, 0, api.MovePayload{
		UnitID: idString(t, unit.ID), X: 6, Y: 5,
	}))

	if got := state.Teams[0].Gold; got != domain.PickupRareValue {
		t.Errorf("gold after rare pickup = %d, want %d", got, domain.PickupRareValue)
	}
	if len(state.Pickups) != 0 {
		t.Errorf("collected pickup must be removed")
	}
}

func TestPickupTopUpDeterministic(t *testing.T) {
	build := func() *domain.GameState {
		state := flatState(t, 20, "red", "blue")
		topUpPickups(state)
		return state
	}
	a, b := build(), build()

	if len(a.Pickups) == 0 {
		t.Fatalf("top-up must spawn pickups on an empty map")
	}
	if len(a.Pickups) != len(b.Pickups) {
		t.Fatalf("pickup counts differ: %d vs %d", len(a.Pickups), len(b.Pickups))
	}
	for i := range a.Pickups {
		if a.Pickups[i].Pos != b.Pickups[i].Pos || a.Pickups[i].Kind != b.Pickups[i].Kind {
			t.Fatalf("pickup %d differs: %+v vs %+v", i, a.Pickups[i], b.Pickups[i])
		}
	}
}

func TestSeerAutoExplore(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	seer := addUnit(state, 0, domain.UnitSeer, 5, 5)
	team := state.Teams[0]

	// Разведана только стартовая область — провидец должен сдвинуться.
	team.Fog = domain.NewFogState()
	fog.Reveal(state, team, seer.Pos, seer.Sight)
	start := seer.Pos

	runSeerMoves(state, team)

	if seer.Pos == start {
		t.Fatalf("seer must move toward unexplored tiles")
	}
	if !seer.HasActed {
		t.Errorf("auto-explore must consume the seer's action")
	}

	// Та же стартовая позиция и туман дают тот же ход.
	state2 := flatState(t, 20, "red", "blue")
	seer2 := addUnit(state2, 0, domain.UnitSeer, 5, 5)
	team2 := state2.Teams[0]
	team2.Fog = domain.NewFogState()
	fog.Reveal(state2, team2, seer2.Pos, seer2.Sight)
	runSeerMoves(state2, team2)

	if seer.Pos != seer2.Pos {
		t.Errorf("seer move must be deterministic: %v vs %v", seer.Pos, seer2.Pos)
	}
}

func TestSeerStaysWhenEverythingSeen(t *testing.T) {
	state := flatState(t, 10, "red", "blue")
	seer := addUnit(state, 0, domain.UnitSeer, 5, 5)
	start := seer.Pos

	runSeerMoves(state, state.Teams[0])
	if seer.Pos != start {
		t.Errorf("seer must stay when the map holds no unseen tiles")
	}
}

func TestSnapshotConvergence(t *testing.T) {
	cfg := Config{Seed: 7, Width: 24, Height: 24, TeamNames: []string{"red", "blue"}, StartingGold: 30}
	host := New(cfg)

	// Немного истории до входа реплики.
	var caps []*domain.Building
	for _, b := range host.State.Buildings {
		caps = append(caps, b)
	}
	if len(caps) < 2 {
		t.Fatalf("expected capitals for both teams, got %d", len(caps))
	}
	mustApply(t, host, command(t, domain.ActionSpawn, 0, api.SpawnPayload{
		CapitalID: idString(t, caps[0].ID), UnitType: "tank",
	}))
	mustApply(t, host, command(t, domain.ActionEndTurn, 0, nil))

	snap := host.BuildSnapshot(3)
	restored, err := RestoreState(snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	replica := NewFromState(restored)

	if !reflect.DeepEqual(host.BuildSnapshot(3), replica.BuildSnapshot(3)) {
		t.Fatalf("restored replica diverges before any delta")
	}

	// Одинаковая последовательность действий на обеих копиях.
	script := []domain.Command{
		command(t, domain.ActionSpawn, 1, api.SpawnPayload{
			CapitalID: idString(t, caps[1].ID), UnitType: "warrior",
		}),
		command(t, domain.ActionEndTurn, 1, nil),
		command(t, domain.ActionEndTurn, 0, nil),
	}
	for _, cmd := range script {
		if _, err := host.Apply(cmd); err != nil {
			t.Fatalf("host apply %s: %v", cmd.Action, err)
		}
		if _, err := replica.Apply(cmd); err != nil {
			t.Fatalf("replica apply %s: %v", cmd.Action, err)
		}
	}

	a, b := host.BuildSnapshot(6), replica.BuildSnapshot(6)
	if !reflect.DeepEqual(a, b) {
		aj, _ := json.Marshal(a)
		bj, _ := json.Marshal(b)
		t.Fatalf("replicas diverged:\nhost:    %s\nreplica: %s", aj, bj)
	}
}

func TestViewHidesUnseen(t *testing.T) {
	state := flatState(t, 20, "red", "blue")
	state.Teams[0].Fog = domain.NewFogState()
	mine := addUnit(state, 0, domain.UnitWarrior, 5, 5)
	addUnit(state, 1, domain.UnitWarrior, 15, 15)
	e := NewFromState(state)
	fog.RecomputeAll(state)

	view := e.BuildViewFor(0)
	if view == nil {
		t.Fatal("view for existing team is nil")
	}
	if len(view.Units) != 1 {
		t.Fatalf("view units = %d, want only own unit", len(view.Units))
	}
	if view.Units[0].ID != idString(t, mine.ID) {
		t.Errorf("visible unit = %s, want own %s", view.Units[0].ID, mine.ID)
	}
	// Видна только область вокруг собственного юнита.
	want := (2*mine.Sight + 1) * (2*mine.Sight + 1)
	if len(view.Map) != want {
		t.Errorf("revealed tiles = %d, want %d", len(view.Map), want)
	}
}
