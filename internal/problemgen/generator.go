package problemgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// maxAttempts caps rejection-sampling retries. Valid tier/policy combinations
// accept within a handful of draws; hitting the cap means the configuration
// itself is unsatisfiable.
const maxAttempts = 1000

// Generator produces division problems by rejection sampling within a tier's
// digit-count ranges.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. A nil rng falls back to the shared global source;
// tests inject a seeded rng for determinism.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns a problem whose dividend and divisor digit counts fall
// within the tier's ranges and whose remainder obeys the policy.
func (g *Generator) Generate(tier TierConfig, policy RemainderPolicy) (*DivisionProblem, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var p *DivisionProblem
		if policy == RemainderForbid {
			p = g.tryExact(tier)
		} else {
			p = g.tryWithRemainder(tier, policy)
		}
		if p == nil {
			continue
		}
		if err := p.Check(); err != nil {
			return nil, fmt.Errorf("generated invalid problem: %w", err)
		}
		p.ID = uuid.NewString()
		p.Tier = tier.Tier
		return p, nil
	}
	return nil, fmt.Errorf("no valid problem for tier %d with policy %q after %d attempts", tier.Tier, policy, maxAttempts)
}

// tryExact picks a divisor, derives the quotient range that keeps the exact
// dividend inside the tier's digit range, and picks a quotient from it.
// Returns nil when the draw admits no quotient.
func (g *Generator) tryExact(tier TierConfig) *DivisionProblem {
	divisor := g.intRange(divisorFloor(tier.DivisorDigits), pow10(tier.DivisorDigits.Max)-1)

	lo := pow10(tier.DividendDigits.Min - 1)
	hi := pow10(tier.DividendDigits.Max) - 1

	qLo := ceilDiv(lo, divisor)
	if qLo < 2 {
		qLo = 2 // quotient 1 would make dividend == divisor
	}
	qHi := hi / divisor
	if qLo > qHi {
		return nil
	}

	quotient := g.intRange(qLo, qHi)
	return &DivisionProblem{
		Dividend: divisor * quotient,
		Divisor:  divisor,
		Quotient: quotient,
	}
}

// tryWithRemainder picks divisor and dividend directly and derives the
// quotient and remainder by division. Returns nil on a rejected draw.
func (g *Generator) tryWithRemainder(tier TierConfig, policy RemainderPolicy) *DivisionProblem {
	divisor := g.intRange(divisorFloor(tier.DivisorDigits), pow10(tier.DivisorDigits.Max)-1)

	lo := pow10(tier.DividendDigits.Min - 1)
	if lo <= divisor {
		lo = divisor + 1
	}
	hi := pow10(tier.DividendDigits.Max) - 1
	if lo > hi {
		return nil
	}

	dividend := g.intRange(lo, hi)
	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient < 1 {
		return nil
	}
	if policy == RemainderRequire && remainder == 0 {
		return nil
	}

	return &DivisionProblem{
		Dividend:  dividend,
		Divisor:   divisor,
		Quotient:  quotient,
		Remainder: remainder,
	}
}

// intRange returns a uniform value in [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	if g.rng != nil {
		return lo + g.rng.IntN(hi-lo+1)
	}
	return lo + rand.IntN(hi-lo+1)
}

// divisorFloor returns the smallest legal divisor for a digit range.
// Single-digit divisors start at 2.
func divisorFloor(r DigitRange) int {
	lo := pow10(r.Min - 1)
	if lo < 2 {
		lo = 2
	}
	return lo
}

func pow10(n int) int {
	out := 1
	for i := 0; i < n; i++ {
		out *= 10
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
