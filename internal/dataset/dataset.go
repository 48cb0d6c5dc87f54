// Package dataset generates the operands consumed by the benchmark scenarios.
//
// Operands are drawn once per run from a seeded source, so every run with the same seed
// measures the same values. Only size/8 operand pairs are drawn, the rest of every array
// repeats them cyclically.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/ericlagergren/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ydb-platform/decimal-bench/internal/xerrors"
	"github.com/ydb-platform/decimal-bench/internal/xrand"
)

// FreshDivisor is the reciprocal of the drawn fraction of a dataset.
const FreshDivisor = 8

const progressDots = 10

var (
	errSize   = errors.New("dataset size must be a power of two of at least 8")
	errScale  = errors.New("invalid scale")
	errDefect = errors.New("dataset defect")
)

type Config struct {
	Size  int
	Seed  int64
	Scale string
}

// Dataset holds two operand sequences per numeric type.
//
// Dec128X is the only mutable sequence: in-place scenarios overwrite its elements, Restore
// brings them back to the generated values. Every Dec128X element is a distinct object.
// Elements of the other sequences may be shared between indices.
type Dataset struct {
	size  int
	fresh int

	Dec128X []*decimal.Big
	Dec128Y []*decimal.Big
	ApdX    []*apd.Decimal
	ApdY    []*apd.Decimal

	pristine []*decimal.Big
}

type generateOptions struct {
	progress io.Writer
	logger   *zap.Logger
}

type Option func(o *generateOptions)

// WithProgress prints a generation progress line to w.
func WithProgress(w io.Writer) Option {
	return func(o *generateOptions) {
		o.progress = w
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *generateOptions) {
		o.logger = l
	}
}

// Generate draws size/8 operand pairs and fills the rest of every array cyclically.
// The apd operands are converted from the 128-bit ones, so both types compute on matched values.
func Generate(cfg Config, opts ...Option) (*Dataset, error) {
	options := generateOptions{
		progress: io.Discard,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if cfg.Size < FreshDivisor || cfg.Size&(cfg.Size-1) != 0 {
		return nil, xerrors.WithStackTrace(fmt.Errorf("%w: %d", errSize, cfg.Size))
	}
	scale, err := parseScale(cfg.Scale)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	start := time.Now()
	printer := message.NewPrinter(language.English)
	_, _ = printer.Fprintf(options.progress, "\nGenerating test data, size = %d\n", cfg.Size)

	ds := &Dataset{
		size:     cfg.Size,
		fresh:    cfg.Size / FreshDivisor,
		Dec128X:  make([]*decimal.Big, cfg.Size),
		Dec128Y:  make([]*decimal.Big, cfg.Size),
		ApdX:     make([]*apd.Decimal, cfg.Size),
		ApdY:     make([]*apd.Decimal, cfg.Size),
		pristine: make([]*decimal.Big, cfg.Size),
	}

	var (
		src    = xrand.New(xrand.WithSeed(cfg.Seed))
		ctx    = Apd38()
		two128 = NewDec128().SetBigMantScale(new(big.Int).Lsh(big.NewInt(1), 128), 0)
		step   = max(ds.fresh/progressDots, 1)
	)
	for i := 0; i < ds.fresh; i++ {
		x := randomDec128(src, two128, scale)
		y := randomDec128(src, two128, scale)

		if ds.ApdX[i], err = ToApd(ctx, x); err != nil {
			return nil, xerrors.WithStackTrace(err)
		}
		if ds.ApdY[i], err = ToApd(ctx, y); err != nil {
			return nil, xerrors.WithStackTrace(err)
		}
		ds.pristine[i] = x
		ds.Dec128Y[i] = y

		if i%step == 0 {
			_, _ = io.WriteString(options.progress, ".")
		}
	}

	for i := ds.fresh; i < ds.size; i++ {
		j := i % ds.fresh
		ds.pristine[i] = ds.pristine[j]
		ds.Dec128Y[i] = ds.Dec128Y[j]
		ds.ApdX[i] = ds.ApdX[j]
		ds.ApdY[i] = ds.ApdY[j]
	}
	for i := range ds.Dec128X {
		ds.Dec128X[i] = NewDec128().Set(ds.pristine[i])
	}
	_, _ = io.WriteString(options.progress, " Ready.\n")

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	options.logger.Info("dataset generated",
		zap.Int("size", ds.size),
		zap.Int("fresh", ds.fresh),
		zap.Int64("seed", cfg.Seed),
		zap.String("scale", scale.String()),
		zap.Uint64("fingerprint", ds.Fingerprint()),
		zap.Duration("took", time.Since(start)),
	)

	return ds, nil
}

// randomDec128 returns u / 2^128 * scale rounded by the Dec128 context, where u is a
// uniform 128-bit draw of src.
func randomDec128(src xrand.Rand, two128, scale *decimal.Big) *decimal.Big {
	x := NewDec128().SetBigMantScale(src.Uint128(), 0)
	x.Quo(x, two128)

	return x.Mul(x, scale)
}

func parseScale(s string) (*decimal.Big, error) {
	scale, ok := NewDec128().SetString(s)
	if !ok || !scale.IsFinite() || scale.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q", errScale, s)
	}

	return scale, nil
}

func (ds *Dataset) Size() int { return ds.size }

// FreshCount is the amount of drawn operand pairs.
func (ds *Dataset) FreshCount() int { return ds.fresh }

// Restore resets every Dec128X element to its generated value.
func (ds *Dataset) Restore() {
	for i, x := range ds.pristine {
		ds.Dec128X[i].Set(x)
	}
}

// Pristine returns the generated value of Dec128X[i]. The result must not be modified.
func (ds *Dataset) Pristine(i int) *decimal.Big {
	return ds.pristine[i]
}
