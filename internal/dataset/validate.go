package dataset

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/apd/v3"

	"github.com/ydb-platform/decimal-bench/internal/decimal128"
	"github.com/ydb-platform/decimal-bench/internal/xerrors"
)

// maxAdjustedExponent bounds operands far below the decimal128 overflow threshold, so that
// products and quotients of two operands stay finite.
const maxAdjustedExponent = 1000

// Validate checks that operands are finite, that divisors are non-zero and that every apd
// coefficient fits a signed 128-bit decimal of 38 digits. A failure means the dataset was
// generated with unusable parameters.
func (ds *Dataset) Validate() error {
	var errs []error
	for i := 0; i < ds.fresh; i++ {
		for _, op := range []struct {
			name    string
			d       *apd.Decimal
			divisor bool
		}{
			{name: "x", d: ds.ApdX[i]},
			{name: "y", d: ds.ApdY[i], divisor: true},
		} {
			if err := validateOperand(op.d, op.divisor); err != nil {
				errs = append(errs, fmt.Errorf("%w: operand %s[%d] = %s: %w", errDefect, op.name, i, op.d, err))
			}
		}
		if ds.Dec128Y[i].Sign() == 0 {
			errs = append(errs, fmt.Errorf("%w: zero 128-bit divisor at %d", errDefect, i))
		}
	}

	return xerrors.WithStackTrace(xerrors.Join(errs...))
}

func validateOperand(d *apd.Decimal, divisor bool) error {
	if d.Form != apd.Finite {
		return fmt.Errorf("non-finite form %v", d.Form)
	}
	if divisor && d.IsZero() {
		return fmt.Errorf("zero divisor")
	}
	c := coefficient(d)
	if !decimal128.Fits(c, decimal128.MaxPrecision) {
		return fmt.Errorf("coefficient exceeds %d digits", decimal128.MaxPrecision)
	}
	// the fingerprint hashes the 128-bit encoding, so it must be lossless
	p := decimal128.ToInt128(c, decimal128.MaxPrecision)
	if decimal128.FromInt128(p, decimal128.MaxPrecision).Cmp(c) != 0 {
		return fmt.Errorf("coefficient %s changes in 128-bit encoding", c)
	}
	if adj := int64(d.Exponent) + d.NumDigits() - 1; adj > maxAdjustedExponent || adj < -maxAdjustedExponent {
		return fmt.Errorf("adjusted exponent %d out of range", adj)
	}

	return nil
}

// Fingerprint hashes every operand of the dataset, the mutable ones included. Equal
// fingerprints mean equal datasets.
func (ds *Dataset) Fingerprint() uint64 {
	var (
		h   = xxhash.New()
		buf [20]byte
	)
	for _, seq := range [][]*apd.Decimal{ds.ApdX, ds.ApdY} {
		for _, d := range seq {
			p := decimal128.ToInt128(coefficient(d), decimal128.MaxPrecision)
			copy(buf[:16], p[:])
			binary.BigEndian.PutUint32(buf[16:], uint32(d.Exponent))
			_, _ = h.Write(buf[:])
		}
	}
	for _, x := range ds.pristine {
		_, _ = h.WriteString(x.String())
	}
	for _, x := range ds.Dec128X {
		_, _ = h.WriteString(x.String())
	}
	for _, y := range ds.Dec128Y {
		_, _ = h.WriteString(y.String())
	}

	return h.Sum64()
}

// coefficient returns the signed coefficient of d.
func coefficient(d *apd.Decimal) *big.Int {
	c := new(big.Int).Set(d.Coeff.MathBigInt())
	if d.Negative {
		c.Neg(c)
	}

	return c
}
