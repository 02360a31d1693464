package v1

import (
	"math"

	"github.com/muhammadchandra19/exchange/pkg/errors"
)

// Synthesizer derives a directional tape from chronological price observations.
//
//go:generate mockgen -source=synthesizer.go -destination=mock/synthesizer_mock.go -package=mock
type Synthesizer interface {
	Synthesize(observations []Observation) ([]Trade, error)
}

// NextPriceSynthesizer tags each observation by looking at the one after it: buy when
// the next price is strictly higher, sell otherwise. The newest observation has no
// successor and is always tagged sell. This is a heuristic over price updates, not a
// record of real aggressor sides.
type NextPriceSynthesizer struct{}

var _ Synthesizer = NextPriceSynthesizer{}

// NewNextPriceSynthesizer returns the default synthesizer.
func NewNextPriceSynthesizer() NextPriceSynthesizer {
	return NextPriceSynthesizer{}
}

// Synthesize expects observations ordered oldest first.
func (NextPriceSynthesizer) Synthesize(observations []Observation) ([]Trade, error) {
	for i, o := range observations {
		if math.IsNaN(o.Price) || math.IsInf(o.Price, 0) {
			return nil, errors.NewMalformedInput("observations", "observation %d has non-finite price", i)
		}
		if i > 0 && o.TimestampSec < observations[i-1].TimestampSec {
			return nil, errors.NewMalformedInput("observations", "observation %d is out of order", i)
		}
	}

	trades := make([]Trade, len(observations))
	last := len(observations) - 1
	for i, o := range observations {
		side := SideSell
		if i < last && observations[i+1].Price > o.Price {
			side = SideBuy
		}
		trades[i] = Trade{
			ID:        o.ID,
			Timestamp: o.TimestampSec,
			Price:     o.Price,
			Side:      side,
		}
	}

	return trades, nil
}

// Chronological returns a reversed copy of a newest-first observation window.
func Chronological(newestFirst []Observation) []Observation {
	observations := make([]Observation, len(newestFirst))
	for i, o := range newestFirst {
		observations[len(newestFirst)-1-i] = o
	}
	return observations
}
