package handicap

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/golfhandicap/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func (s *ServiceSuite) TestEmptyIsAbsent() {
	_, ok := s.service.ComputeIndex(nil)
	s.False(ok)

	_, ok = s.service.ComputeIndex([]Round{})
	s.False(ok)
}

func (s *ServiceSuite) TestMixedSlopes() {
	index, ok := s.service.ComputeIndex([]Round{
		{Strokes: 89, Par: 72, Slope: 121},
		{Strokes: 85, Par: 72, Slope: 113},
		{Strokes: 90, Par: 72, Slope: 130},
	})
	s.Require().True(ok)
	s.Equal(14.84, index)
	s.InDelta(14.83, index, 0.011)
}

func (s *ServiceSuite) TestZeroSlopeUsesBaseline() {
	index, ok := s.service.ComputeIndex([]Round{
		{Strokes: 85, Par: 72, Slope: 0},
		{Strokes: 90, Par: 72, Slope: 0},
	})
	s.Require().True(ok)
	s.Equal(15.5, index)
}

func (s *ServiceSuite) TestSlopeBounds() {
	in, _ := s.service.ComputeIndex([]Round{{Strokes: 83, Par: 72, Slope: 55}})
	s.Equal(22.6, in)

	out, _ := s.service.ComputeIndex([]Round{{Strokes: 83, Par: 72, Slope: 54}})
	s.Equal(11.0, out)

	high, _ := s.service.ComputeIndex([]Round{{Strokes: 83, Par: 72, Slope: 156}})
	s.Equal(11.0, high)
}

func (s *ServiceSuite) TestNegativeIndex() {
	index, ok := s.service.ComputeIndex([]Round{{Strokes: 68, Par: 72, Slope: 113}})
	s.Require().True(ok)
	s.Equal(-4.0, index)
}

func (s *ServiceSuite) TestHalfCentRoundsAwayFromZero() {
	// 113*2/120 + 113*4/120 = 5.65 exactly, mean 2.825
	index, _ := s.service.ComputeIndex([]Round{
		{Strokes: 74, Par: 72, Slope: 120},
		{Strokes: 76, Par: 72, Slope: 120},
	})
	s.Equal(2.83, index)

	negative, _ := s.service.ComputeIndex([]Round{
		{Strokes: 70, Par: 72, Slope: 120},
		{Strokes: 68, Par: 72, Slope: 120},
	})
	s.Equal(-2.83, negative)
}

func (s *ServiceSuite) TestSeries() {
	index, ok, err := s.service.ComputeIndexFromSeries([]int{89, 85, 90}, []int{72, 72, 72}, []int{121, 113, 130})
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(14.84, index)
}

func (s *ServiceSuite) TestSeriesWithoutSlopes() {
	index, ok, err := s.service.ComputeIndexFromSeries([]int{85, 90}, []int{72, 72}, nil)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(15.5, index)
}

func (s *ServiceSuite) TestSeriesMissingInput() {
	_, ok, err := s.service.ComputeIndexFromSeries(nil, []int{72}, nil)
	s.NoError(err)
	s.False(ok)

	_, ok, err = s.service.ComputeIndexFromSeries([]int{80}, nil, nil)
	s.NoError(err)
	s.False(ok)

	_, ok, err = s.service.ComputeIndexFromSeries([]int{}, []int{}, nil)
	s.NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestSeriesLengthMismatch() {
	_, _, err := s.service.ComputeIndexFromSeries([]int{80, 81}, []int{72}, nil)
	s.ErrorIs(err, model.ErrMismatchedSeries)
	s.ErrorIs(err, model.ErrInvalidInput)

	_, _, err = s.service.ComputeIndexFromSeries([]int{80}, []int{72}, []int{113, 120})
	s.ErrorIs(err, model.ErrMismatchedSeries)
}

func (s *ServiceSuite) TestDifferential() {
	d := s.service.Differential(Round{Strokes: 89, Par: 72, Slope: 121})
	s.Equal("15.88", d.StringFixed(2))
}

func (s *ServiceSuite) TestRoundsFromEntries() {
	rounds := RoundsFromEntries([]*model.ScoreEntry{
		{Strokes: 80, Par: 72, Slope: 120},
		{Strokes: 90, Par: 70, Slope: 113},
	})
	s.Equal([]Round{{80, 72, 120}, {90, 70, 113}}, rounds)
	s.NotNil(RoundsFromEntries(nil))
}

func genRounds() gopter.Gen {
	round := gopter.CombineGens(
		gen.IntRange(50, 150),
		gen.IntRange(60, 75),
		gen.IntRange(0, 200),
	).Map(func(v []interface{}) Round {
		return Round{Strokes: v[0].(int), Par: v[1].(int), Slope: v[2].(int)}
	})
	return gen.SliceOfN(12, round).SuchThat(func(rs []Round) bool { return len(rs) > 0 })
}

func exactMean(rounds []Round) float64 {
	var sum float64
	for _, r := range rounds {
		sum += float64(r.Strokes-r.Par) * model.BaselineSlope / float64(model.EffectiveSlope(r.Slope))
	}
	return sum / float64(len(rounds))
}

func TestComputeIndexProperties(t *testing.T) {
	svc := New()
	properties := gopter.NewProperties(nil)

	properties.Property("index is within half a hundredth of the exact mean", prop.ForAll(
		func(rounds []Round) bool {
			index, ok := svc.ComputeIndex(rounds)
			return ok && math.Abs(index-exactMean(rounds)) <= 0.005+1e-9
		},
		genRounds(),
	))

	properties.Property("index has at most two decimal places", prop.ForAll(
		func(rounds []Round) bool {
			index, _ := svc.ComputeIndex(rounds)
			return math.Abs(index*100-math.Round(index*100)) < 1e-6
		},
		genRounds(),
	))

	properties.Property("order of rounds does not matter", prop.ForAll(
		func(rounds []Round) bool {
			reversed := make([]Round, len(rounds))
			for i, r := range rounds {
				reversed[len(rounds)-1-i] = r
			}
			a, _ := svc.ComputeIndex(rounds)
			b, _ := svc.ComputeIndex(reversed)
			return a == b
		},
		genRounds(),
	))

	properties.Property("mirroring strokes around par negates the index", prop.ForAll(
		func(rounds []Round) bool {
			mirrored := make([]Round, len(rounds))
			for i, r := range rounds {
				mirrored[i] = Round{Strokes: 2*r.Par - r.Strokes, Par: r.Par, Slope: r.Slope}
			}
			a, _ := svc.ComputeIndex(rounds)
			b, _ := svc.ComputeIndex(mirrored)
			return a == -b
		},
		genRounds(),
	))

	properties.Property("invalid slopes behave like the baseline", prop.ForAll(
		func(strokes, par, slope int) bool {
			a, _ := svc.ComputeIndex([]Round{{Strokes: strokes, Par: par, Slope: slope}})
			b, _ := svc.ComputeIndex([]Round{{Strokes: strokes, Par: par, Slope: model.BaselineSlope}})
			return a == b
		},
		gen.IntRange(50, 150),
		gen.IntRange(60, 75),
		gen.OneGenOf(gen.IntRange(-50, 54), gen.IntRange(156, 400)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
