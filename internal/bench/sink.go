package bench

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/ericlagergren/decimal"
)

// Sink consumes every computed result, so the calls producing them cannot be eliminated.
type Sink struct {
	dec128 *decimal.Big
	apd    *apd.Decimal
	count  uint64
	err    error
}

func (s *Sink) ConsumeDec128(x *decimal.Big) {
	s.dec128 = x
	s.count++
}

// ConsumeApd keeps the first error reported by an apd operation.
func (s *Sink) ConsumeApd(d *apd.Decimal, _ apd.Condition, err error) {
	s.apd = d
	s.count++
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("apd operation on %s: %w", d, err)
	}
}

// Count is the amount of consumed results since the trial setup.
func (s *Sink) Count() uint64 { return s.count }

func (s *Sink) Err() error { return s.err }

func (s *Sink) reset() {
	*s = Sink{}
}
