package bench

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/ericlagergren/decimal"

	"github.com/ydb-platform/decimal-bench/internal/dataset"
)

// Next returns the working index following i in a dataset of the given size.
// size must be a power of two.
func Next(i, size int) int {
	return (i + 1) & (size - 1)
}

// Harness is the state one scenario runs against: the dataset, the working index, result
// slots and the sink. It is owned by a single goroutine.
type Harness struct {
	ds    *dataset.Dataset
	size  int
	index int

	apdCtx *apd.Context

	apdResults      []*apd.Decimal
	dec128Results   []*decimal.Big
	dec128Receivers []*decimal.Big

	sink Sink
}

func NewHarness(ds *dataset.Dataset) *Harness {
	h := &Harness{
		ds:              ds,
		size:            ds.Size(),
		apdCtx:          dataset.Apd38(),
		apdResults:      make([]*apd.Decimal, ds.Size()),
		dec128Results:   make([]*decimal.Big, ds.Size()),
		dec128Receivers: make([]*decimal.Big, ds.Size()),
	}
	for i := range h.dec128Receivers {
		h.dec128Receivers[i] = dataset.NewDec128()
	}

	return h
}

// Index is the working index of the next measured call.
func (h *Harness) Index() int { return h.index }

func (h *Harness) Sink() *Sink { return &h.sink }

func (h *Harness) advance() {
	h.index = Next(h.index, h.size)
}

// reset is the trial setup: restores mutable operands and rewinds the index.
func (h *Harness) reset() {
	h.ds.Restore()
	h.index = 0
	h.sink.reset()
}

// setupInvocation restores mutable operands when the index has wrapped to zero.
// Calls within one wrap see the operands left by the previous calls of that wrap.
func (h *Harness) setupInvocation() {
	if h.index == 0 {
		h.ds.Restore()
	}
}

// untilWrap is the amount of calls left before the index wraps to zero.
func (h *Harness) untilWrap() int {
	return h.size - h.index
}
