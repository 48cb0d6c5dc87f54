package dataset

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/ericlagergren/decimal"

	"github.com/ydb-platform/decimal-bench/internal/decimal128"
)

// Dec128 is the arithmetic context of the 128-bit operands: IEEE 754 decimal128,
// 34 digits, rounding half to even.
var Dec128 = decimal.Context128

// Apd38 returns the context of the arbitrary-precision operands: 38 digits, rounding half
// to even.
func Apd38() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(decimal128.MaxPrecision)
	ctx.Rounding = apd.RoundHalfEven

	return ctx
}

// NewDec128 returns a zero 128-bit operand bound to the Dec128 context.
func NewDec128() *decimal.Big {
	return decimal.WithContext(Dec128)
}

// ToApd converts x exactly, then rounds it with ctx.
func ToApd(ctx *apd.Context, x *decimal.Big) (*apd.Decimal, error) {
	d, _, err := ctx.NewFromString(x.String())
	if err != nil {
		return nil, err
	}

	return d, nil
}
