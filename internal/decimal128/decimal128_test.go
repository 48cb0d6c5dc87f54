package decimal128

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	for _, tt := range []struct {
		name      string
		bts       []byte
		precision uint32
		exp       string
	}{
		{
			name:      "MinusOne",
			bts:       uint128(0xffffffffffffffff, 0xffffffffffffffff),
			precision: 22,
			exp:       "-1",
		},
		{
			name:      "NegativeHighWord",
			bts:       uint128(0xffffffffffffffff, 0),
			precision: 22,
			exp:       "-18446744073709551616",
		},
		{
			name:      "PositiveInf",
			bts:       uint128(0x4000000000000000, 0),
			precision: 22,
			exp:       inf.String(),
		},
		{
			name:      "NegativeInf",
			bts:       uint128(0x8000000000000000, 0),
			precision: 22,
			exp:       neginf.String(),
		},
		{
			name:      "Small",
			bts:       uint128s(1000000000),
			precision: 22,
			exp:       "1000000000",
		},
		{
			name:      "MaxPrecision",
			bts:       uint128(0x4b3b4ca85a86c47a, 0x098a223fffffffff),
			precision: MaxPrecision,
			exp:       "99999999999999999999999999999999999999",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			x := FromBytes(tt.bts, tt.precision)
			require.Equal(t, tt.exp, x.String())
		})
	}
}

func TestToInt128(t *testing.T) {
	for _, s := range []string{
		"0",
		"1",
		"-1",
		"255",
		"-256",
		"18446744073709551616",
		"-18446744073709551617",
		"12345678901234567890123456789012345678",
		"-99999999999999999999999999999999999999",
	} {
		t.Run(s, func(t *testing.T) {
			x, ok := big.NewInt(0).SetString(s, 10)
			require.True(t, ok)
			require.True(t, Fits(x, MaxPrecision))
			p := ToInt128(x, MaxPrecision)
			require.Equal(t, 0, x.Cmp(FromInt128(p, MaxPrecision)))
		})
	}
}

func TestToInt128Saturates(t *testing.T) {
	x := pow(ten, MaxPrecision)
	require.False(t, Fits(x, MaxPrecision))
	require.True(t, IsInf(FromInt128(ToInt128(x, MaxPrecision), MaxPrecision)))

	x.Neg(x)
	y := FromInt128(ToInt128(x, MaxPrecision), MaxPrecision)
	require.True(t, IsInf(y))
	require.Equal(t, -1, y.Sign())

	require.False(t, IsNaN(y))
}

func TestToInt128Layout(t *testing.T) {
	require.Equal(t, uint128(0xffffffffffffffff, 0xffffffffffffff00), bytes(ToInt128(big.NewInt(-256), 22)))
	require.Equal(t, uint128(0, 0x0102), bytes(ToInt128(big.NewInt(0x0102), 22)))
}

func uint128(hi, lo uint64) []byte {
	p := make([]byte, 16)
	binary.BigEndian.PutUint64(p[:8], hi)
	binary.BigEndian.PutUint64(p[8:], lo)

	return p
}

func uint128s(lo uint64) []byte {
	return uint128(0, lo)
}

func bytes(p [16]byte) []byte {
	return p[:]
}
