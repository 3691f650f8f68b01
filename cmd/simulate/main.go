package main

import (
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/engine"
	"github.com/Liam-made-young/REPUBLIC/internal/infrastructure/storage"
	"github.com/Liam-made-young/REPUBLIC/internal/version"
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var journalPath string
	var demoSeed int64
	flag.StringVar(&journalPath, "journal", "", "Path to .rpj journal file to simulate")
	flag.Int64Var(&demoSeed, "demo", 0, "Record a demo journal with the given seed and exit")
	flag.Parse()

	logger.Log.Info(version.String())

	if demoSeed != 0 {
		recordDemo(demoSeed)
		return
	}

	if journalPath == "" {
		logger.Log.Fatal("Usage: simulate -journal <path to .rpj file>")
	}

	svc := storage.NewJournalService(".")
	journal, err := svc.Load(journalPath)
	if err != nil {
		logger.Log.Fatal("Failed to load journal: ", err)
	}

	logger.Log.Infof("💿 Replaying journal: seed=%d, %dx%d, %d teams, %d actions",
		journal.Seed, journal.Width, journal.Height, len(journal.TeamNames), len(journal.Actions))

	cfg := engine.Config{
		Seed:         journal.Seed,
		Width:        journal.Width,
		Height:       journal.Height,
		TeamNames:    journal.TeamNames,
		StartingGold: journal.StartingGold,
	}
	eng := engine.New(cfg)

	applied, rejected := 0, 0
	for _, act := range journal.Actions {
		cmd := domain.Command{
			Action:  act.Action,
			Team:    act.Team,
			Payload: act.Payload,
		}
		if _, err := eng.Apply(cmd); err != nil {
			// Журнал содержит только принятые действия, поэтому отказ
			// означает повреждённый файл или рассинхрон версий правил.
			logger.Log.WithError(err).Warnf("action rejected on replay: turn=%d team=%d %s",
				act.Turn, act.Team, act.Action)
			rejected++
			continue
		}
		applied++
	}

	snap := eng.BuildSnapshot(uint64(applied))
	raw, err := json.Marshal(snap)
	if err != nil {
		logger.Log.Fatal("Failed to marshal final snapshot: ", err)
	}
	digest := sha256.Sum256(raw)

	state := eng.State
	logger.Log.Infof("Replay finished: turn=%d phase=%s applied=%d rejected=%d",
		state.Turn, state.Phase, applied, rejected)
	if state.Phase == domain.PhaseEnded {
		if state.Draw {
			logger.Log.Info("Result: draw")
		} else {
			logger.Log.Infof("Result: team %d (%s) wins", state.Winner, state.Team(state.Winner).Name)
		}
	}
	fmt.Printf("digest sha256:%x\n", digest)
}

// recordDemo проигрывает короткую скриптованную партию и сохраняет её
// журнал рядом с бинарником. Удобно для проверки цепочки запись-повтор.
func recordDemo(seed int64) {
	cfg := engine.NewConfig()
	cfg.Seed = seed
	eng := engine.New(cfg)

	journal := &storage.Journal{
		Seed:         cfg.Seed,
		Timestamp:    time.Now().Unix(),
		Width:        cfg.Width,
		Height:       cfg.Height,
		StartingGold: cfg.StartingGold,
		TeamNames:    cfg.TeamNames,
	}

	record := func(cmd domain.Command) {
		turn := eng.State.Turn
		if _, err := eng.Apply(cmd); err != nil {
			logger.Log.WithError(err).Warnf("demo command rejected: %s", cmd.Action)
			return
		}
		journal.Actions = append(journal.Actions, storage.JournalAction{
			Turn:    turn,
			Team:    cmd.Team,
			Action:  cmd.Action,
			Payload: cmd.Payload,
		})
	}

	// Три круга: каждая команда спавнит воина в своей столице и
	// передаёт ход.
	for round := 0; round < 3; round++ {
		for range cfg.TeamNames {
			team := eng.State.Active
			if capital := findCapital(eng.State, team); capital != nil {
				idText, _ := capital.ID.MarshalText()
				payload, _ := json.Marshal(api.SpawnPayload{
					CapitalID: string(idText),
					UnitType:  "WARRIOR",
				})
				record(domain.Command{Action: domain.ActionSpawn, Team: team, Payload: payload})
			}
			record(domain.Command{Action: domain.ActionEndTurn, Team: team})
		}
	}

	svc := storage.NewJournalService(".")
	path, err := svc.Save(journal)
	if err != nil {
		logger.Log.Fatal("Failed to save demo journal: ", err)
	}
	logger.Log.Infof("Demo journal saved: %s (%d actions)", path, len(journal.Actions))
}

func findCapital(state *domain.GameState, team domain.TeamID) *domain.Building {
	for _, b := range state.BuildingsOf(team) {
		if b.Type == domain.BuildingCapital {
			return b
		}
	}
	return nil
}
