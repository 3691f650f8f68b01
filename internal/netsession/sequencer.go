package netsession

import (
	"github.com/Liam-made-young/REPUBLIC/pkg/api"
)

// sequencer восстанавливает строгий порядок дельт.
//
// Дельты применяются только по возрастанию Seq без пропусков: пришедшие
// раньше времени буферизуются до заполнения дыры. Дыра шире порога
// означает, что догнать поток уже нереально — нужен полный снапшот.
type sequencer struct {
	// next — Seq, который ожидается следующим.
	next uint64

	// threshold — максимальная ширина дыры до запроса ресинка.
	threshold uint64

	pending map[uint64]*api.ActionDelta
}

func newSequencer(threshold uint64) *sequencer {
	return &sequencer{
		next:      1,
		threshold: threshold,
		pending:   make(map[uint64]*api.ActionDelta),
	}
}

// Reset выставляет позицию после применения снапшота: буфер очищается,
// следующей ожидается дельта seq+1.
func (q *sequencer) Reset(seq uint64) {
	q.next = seq + 1
	q.pending = make(map[uint64]*api.ActionDelta)
}

// Ingest принимает дельту и возвращает непрерывный префикс, готовый к
// применению (возможно пустой). needResync=true — дыра превысила порог,
// буфер дальше не растёт, нужен полный снапшот.
func (q *sequencer) Ingest(d *api.ActionDelta) (ready []*api.ActionDelta, needResync bool) {
	if d.Seq < q.next {
		// Дубликат или дельта из уже применённого снапшота.
		return nil, false
	}
	if d.Seq > q.next {
		if d.Seq-q.next > q.threshold {
			return nil, true
		}
		q.pending[d.Seq] = d
		return nil, false
	}

	ready = append(ready, d)
	q.next++
	for {
		buffered, ok := q.pending[q.next]
		if !ok {
			break
		}
		delete(q.pending, q.next)
		ready = append(ready, buffered)
		q.next++
	}
	return ready, false
}

// Pending возвращает число дельт, ждущих заполнения дыры.
func (q *sequencer) Pending() int {
	return len(q.pending)
}

// Next возвращает ожидаемый Seq.
func (q *sequencer) Next() uint64 {
	return q.next
}
