package normalizer

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"go-timeclock/internal/timezone"
)

const (
	StdDevMinutes    = 4.0
	MaxOffsetMinutes = 10.0
)

type Kind string

const (
	KindIn  Kind = "in"
	KindOut Kind = "out"
)

// Variation is a Gaussian offset (mean 0, StdDevMinutes) clamped to
// ±MaxOffsetMinutes and rounded to whole seconds. The same inputs always
// yield the same offset.
func Variation(employeeID string, date timezone.Date, kind Kind) time.Duration {
	h := fnv.New64a()
	_, _ = h.Write([]byte(employeeID + "|" + date.String() + "|" + string(kind)))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

	minutes := math.Max(-MaxOffsetMinutes, math.Min(MaxOffsetMinutes, z*StdDevMinutes))
	return time.Duration(math.Round(minutes*60)) * time.Second
}
