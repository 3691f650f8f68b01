package netsession

import (
	"testing"

	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

func delta(seq uint64) *api.ActionDelta {
	return &api.ActionDelta{Seq: seq, Action: "END_TURN"}
}

func seqs(ds []*api.ActionDelta) []uint64 {
	var out []uint64
	for _, d := range ds {
		out = append(out, d.Seq)
	}
	return out
}

func TestSequencerInOrder(t *testing.T) {
	q := newSequencer(8)

	for i := uint64(1); i <= 3; i++ {
		ready, resync := q.Ingest(delta(i))
		if resync {
			t.Fatalf("seq %d: unexpected resync", i)
		}
		if len(ready) != 1 || ready[0].Seq != i {
			t.Fatalf("seq %d: ready = %v", i, seqs(ready))
		}
	}
	if q.Next() != 4 {
		t.Errorf("next = %d, want 4", q.Next())
	}
}

func TestSequencerBuffersOutOfOrder(t *testing.T) {
	q := newSequencer(8)

	ready, resync := q.Ingest(delta(3))
	if resync || len(ready) != 0 {
		t.Fatalf("early delta must be buffered, ready = %v", seqs(ready))
	}
	ready, resync = q.Ingest(delta(2))
	if resync || len(ready) != 0 {
		t.Fatalf("early delta must be buffered, ready = %v", seqs(ready))
	}
	if q.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", q.Pending())
	}

	// Дыра закрылась: выходит весь непрерывный префикс.
	ready, resync = q.Ingest(delta(1))
	if resync {
		t.Fatal("unexpected resync")
	}
	want := []uint64{1, 2, 3}
	got := seqs(ready)
	if len(got) != len(want) {
		t.Fatalf("ready = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ready = %v, want %v", got, want)
		}
	}
	if q.Pending() != 0 {
		t.Errorf("pending after drain = %d", q.Pending())
	}
}

func TestSequencerDropsDuplicates(t *testing.T) {
	q := newSequencer(8)

	q.Ingest(delta(1))
	ready, resync := q.Ingest(delta(1))
	if resync || len(ready) != 0 {
		t.Errorf("duplicate must be dropped, ready = %v", seqs(ready))
	}
}

func TestSequencerResyncOnWideGap(t *testing.T) {
	q := newSequencer(4)

	_, resync := q.Ingest(delta(5))
	if resync {
		t.Fatal("gap of 4 is within threshold")
	}
	_, resync = q.Ingest(delta(6))
	if !resync {
		t.Fatal("gap of 5 must trigger resync")
	}
}

func TestSequencerResetAfterSnapshot(t *testing.T) {
	q := newSequencer(8)
	q.Ingest(delta(3)) // буферизована

	q.Reset(10)
	if q.Pending() != 0 {
		t.Errorf("reset must clear the buffer, pending = %d", q.Pending())
	}
	if q.Next() != 11 {
		t.Errorf("next after reset = %d, want 11", q.Next())
	}

	// Дельты из-под снапшота — дубликаты.
	ready, _ := q.Ingest(delta(7))
	if len(ready) != 0 {
		t.Errorf("pre-snapshot delta must be dropped")
	}
	ready, _ = q.Ingest(delta(11))
	if len(ready) != 1 {
		t.Errorf("post-snapshot delta must apply")
	}
}
