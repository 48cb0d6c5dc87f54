// Package decimal128 encodes decimal coefficients as 128-bit two's complement integers.
//
// A coefficient is valid for a given precision when its absolute value is less than
// 10^precision. Out of range values saturate to the infinity sentinels.
package decimal128

import (
	"math/big"
	"math/bits"
)

// MaxPrecision is the largest number of decimal digits representable by a signed 128-bit
// coefficient.
const MaxPrecision = 38

const wordSize = bits.UintSize / 8

var (
	ten = big.NewInt(10)
	one = big.NewInt(1)
	inf = pow(ten, MaxPrecision)
	nan = big.NewInt(0).Add(inf, one)

	neginf = big.NewInt(0).Neg(inf)
)

// IsInf reports whether x is an infinity.
func IsInf(x *big.Int) bool { return x.CmpAbs(inf) == 0 }

// IsNaN reports whether x is a "not-a-number" value.
func IsNaN(x *big.Int) bool { return x.CmpAbs(nan) == 0 }

// Fits reports whether x is a finite coefficient of at most precision digits.
func Fits(x *big.Int, precision uint32) bool {
	return x.CmpAbs(pow(ten, precision)) < 0
}

// FromBytes converts bytes representation of decimal to big integer.
// Most callers should use FromInt128().
//
// If given bytes contains value that is greater than given precision it
// returns infinity or negative infinity value accordingly the bytes sign.
func FromBytes(bts []byte, precision uint32) *big.Int {
	v := big.NewInt(0)
	if len(bts) == 0 {
		return v
	}

	v.SetBytes(bts)

	neg := bts[0]&0x80 != 0
	if neg {
		// Given bytes contains negative value.
		// Interpret is as two's complement.
		not(v, len(bts))
		v.Add(v, one)
		v.Neg(v)
	}
	if v.CmpAbs(pow(ten, precision)) >= 0 {
		if neg {
			v.Set(neginf)
		} else {
			v.Set(inf)
		}
	}

	return v
}

// FromInt128 returns big integer from given array. That is, it interprets
// 16-byte array as 128-bit integer.
func FromInt128(p [16]byte, precision uint32) *big.Int {
	return FromBytes(p[:], precision)
}

// ToInt128 returns the 16-byte array representation of x.
//
// If x value does not fit in 16 bytes with given precision, it returns 16-byte
// representation of infinity or negative infinity value accordingly to x's sign.
func ToInt128(x *big.Int, precision uint32) (p [16]byte) {
	if !IsInf(x) && !IsNaN(x) && !Fits(x, precision) {
		if x.Sign() < 0 {
			x = neginf
		} else {
			x = inf
		}
	}
	put(x, p[:])

	return p
}

func put(x *big.Int, p []byte) {
	neg := x.Sign() < 0
	if neg {
		x = complement(x)
	}
	i := len(p)
	for _, d := range x.Bits() {
		for j := 0; j < wordSize && i > 0; j++ {
			i--
			if neg {
				p[i] = ^byte(d)
			} else {
				p[i] = byte(d)
			}
			d >>= 8
		}
	}
	var pad byte
	if neg {
		pad = 0xff
	}
	for 0 < i {
		i--
		p[i] = pad
	}
}

// not inverts the low n bytes of x without handling the sign of x.
// That is, it more similar to x.Xor(ones) where ones is n bytes all set to 1.
func not(x *big.Int, n int) {
	mask := big.NewInt(0).Lsh(one, uint(n*8))
	mask.Sub(mask, one)
	x.Xor(x, mask)
}

// pow returns new instance of big.Int equal to x^n.
func pow(x *big.Int, n uint32) *big.Int {
	var (
		v = big.NewInt(1)
		m = big.NewInt(0).Set(x)
	)
	for n > 0 {
		if n&1 != 0 {
			v.Mul(v, m)
		}
		n >>= 1
		m.Mul(m, m)
	}

	return v
}

// complement returns -x-1, whose inverted bytes are the two's complement of x.
// x must be negative.
func complement(x *big.Int) *big.Int {
	x = big.NewInt(0).Set(x)
	x.Neg(x)
	x.Sub(x, one)

	return x
}
