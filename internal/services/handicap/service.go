package handicap

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/mcoot/golfhandicap/internal/model"
)

// Round is the calculator's view of a score entry
type Round struct {
	Strokes int
	Par     int
	Slope   int
}

// Calculator derives a handicap index from a set of rounds
type Calculator interface {
	ComputeIndex(rounds []Round) (float64, bool)
	ComputeIndexFromSeries(strokes, pars, slopes []int) (float64, bool, error)
	Differential(r Round) decimal.Decimal
}

// Service is the differential calculator. It holds no state and is safe
// for concurrent use.
type Service struct{}

// New creates a new handicap calculator
func New() *Service {
	return &Service{}
}

var _ Calculator = (*Service)(nil)

// ComputeIndex returns the mean differential of rounds rounded half away
// from zero to two decimal places. The second result is false when there
// are no rounds.
//
// A round's differential is (strokes - par) * 113 / slope, where slope is
// replaced by 113 unless it lies in [55, 155].
func (s *Service) ComputeIndex(rounds []Round) (float64, bool) {
	if len(rounds) == 0 {
		return 0, false
	}

	// Sum exactly; rounding a truncated quotient can land on the wrong side
	// of a half-cent boundary.
	sum := new(big.Rat)
	for _, r := range rounds {
		sum.Add(sum, differential(r))
	}
	mean := sum.Quo(sum, big.NewRat(int64(len(rounds)), 1))

	return roundHundredths(mean).InexactFloat64(), true
}

// ComputeIndexFromSeries computes the index from parallel series. Missing
// strokes or pars yields no index. A nil slopes series means every round is
// rated at the baseline. Series of different lengths are rejected.
func (s *Service) ComputeIndexFromSeries(strokes, pars, slopes []int) (float64, bool, error) {
	if strokes == nil || pars == nil {
		return 0, false, nil
	}
	if len(strokes) != len(pars) {
		return 0, false, model.ErrMismatchedSeries
	}
	if slopes != nil && len(slopes) != len(strokes) {
		return 0, false, model.ErrMismatchedSeries
	}

	rounds := make([]Round, len(strokes))
	for i := range strokes {
		slope := model.BaselineSlope
		if slopes != nil {
			slope = slopes[i]
		}
		rounds[i] = Round{Strokes: strokes[i], Par: pars[i], Slope: slope}
	}

	index, ok := s.ComputeIndex(rounds)
	return index, ok, nil
}

// Differential returns a single round's differential rounded to two places
func (s *Service) Differential(r Round) decimal.Decimal {
	return roundHundredths(differential(r))
}

func differential(r Round) *big.Rat {
	return big.NewRat(
		int64(r.Strokes-r.Par)*model.BaselineSlope,
		int64(model.EffectiveSlope(r.Slope)),
	)
}

// roundHundredths rounds x half away from zero at the second decimal place
func roundHundredths(x *big.Rat) decimal.Decimal {
	scaled := new(big.Rat).Mul(x, big.NewRat(100, 1))
	num, den := scaled.Num(), scaled.Denom()

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Abs(rem)
	twice.Lsh(twice, 1)
	if twice.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return decimal.NewFromBigInt(q, -2)
}

// RoundsFromEntries projects stored entries onto calculator input
func RoundsFromEntries(entries []*model.ScoreEntry) []Round {
	rounds := make([]Round, 0, len(entries))
	for _, e := range entries {
		rounds = append(rounds, Round{Strokes: e.Strokes, Par: e.Par, Slope: e.Slope})
	}
	return rounds
}
