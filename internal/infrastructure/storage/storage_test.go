package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

func sampleJournal() *Journal {
	movePayload, _ := json.Marshal(map[string]any{"unit_id": "17", "x": 5, "y": 6})
	return &Journal{
		Seed:         42,
		Timestamp:    1764854400,
		Width:        40,
		Height:       40,
		StartingGold: 12,
		TeamNames:    []string{"red", "blue"},
		Actions: []JournalAction{
			{Turn: 1, Team: 0, Action: domain.ActionSpawn, Payload: []byte(`{"capital_id":"3","unit_type":"WARRIOR"}`)},
			{Turn: 1, Team: 0, Action: domain.ActionEndTurn},
			{Turn: 2, Team: 1, Action: domain.ActionMove, Payload: movePayload},
		},
	}
}

func TestJournalRoundtrip(t *testing.T) {
	src := sampleJournal()

	var buf bytes.Buffer
	if err := writeBinary(&buf, src); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := readBinary(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if got.Seed != src.Seed || got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("header mismatch: got %+v", got)
	}
	if got.StartingGold != src.StartingGold {
		t.Fatalf("starting gold mismatch: got %d", got.StartingGold)
	}
	if len(got.TeamNames) != 2 || got.TeamNames[0] != "red" || got.TeamNames[1] != "blue" {
		t.Fatalf("team names mismatch: %v", got.TeamNames)
	}
	if len(got.Actions) != len(src.Actions) {
		t.Fatalf("expected %d actions, got %d", len(src.Actions), len(got.Actions))
	}
	for i, act := range got.Actions {
		want := src.Actions[i]
		if act.Turn != want.Turn || act.Team != want.Team || act.Action != want.Action {
			t.Errorf("action %d header mismatch: got %+v, want %+v", i, act, want)
		}
		if !bytes.Equal(act.Payload, want.Payload) {
			t.Errorf("action %d payload mismatch: got %q, want %q", i, act.Payload, want.Payload)
		}
	}
}

func TestJournalEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	j := &Journal{Seed: 1, TeamNames: []string{"solo"}, Actions: []JournalAction{{Turn: 1, Action: domain.ActionEndTurn}}}
	if err := writeBinary(&buf, j); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := readBinary(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Actions[0].Payload) != 0 {
		t.Fatalf("expected empty payload, got %q", got.Actions[0].Payload)
	}
}

func TestJournalRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleJournal()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw := buf.Bytes()
	copy(raw[:4], "XXXX")

	if _, err := readBinary(bytes.NewReader(raw)); err == nil {
		t.Fatal("expected error for corrupted magic")
	}
}

func TestJournalSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewJournalService(dir)

	path, err := svc.Save(sampleJournal())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Ext(path) != ".rpj" {
		t.Fatalf("unexpected extension: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("journal file missing: %v", err)
	}

	got, err := svc.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != 42 || len(got.Actions) != 3 {
		t.Fatalf("unexpected journal contents: seed=%d actions=%d", got.Seed, len(got.Actions))
	}
}
