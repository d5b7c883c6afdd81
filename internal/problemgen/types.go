package problemgen

import "fmt"

// DivisionProblem is a single long-division exercise in bus-stop form:
// dividend ÷ divisor = quotient remainder remainder.
type DivisionProblem struct {
	// ID uniquely identifies the problem instance (UUID).
	ID string

	Dividend  int
	Divisor   int
	Quotient  int
	Remainder int

	// Tier is the difficulty tier this problem was generated for (1-based).
	Tier int
}

// Check verifies the structural invariants of a division problem.
// Violations indicate a generator bug, not bad user input.
func (p DivisionProblem) Check() error {
	if p.Divisor < 2 {
		return fmt.Errorf("divisor %d < 2", p.Divisor)
	}
	if p.Dividend <= p.Divisor {
		return fmt.Errorf("dividend %d must exceed divisor %d", p.Dividend, p.Divisor)
	}
	if p.Remainder < 0 || p.Remainder >= p.Divisor {
		return fmt.Errorf("remainder %d out of range [0, %d)", p.Remainder, p.Divisor)
	}
	if p.Dividend != p.Divisor*p.Quotient+p.Remainder {
		return fmt.Errorf("%d != %d*%d + %d", p.Dividend, p.Divisor, p.Quotient, p.Remainder)
	}
	return nil
}

// RemainderPolicy constrains whether generated problems divide evenly.
type RemainderPolicy string

const (
	// RemainderForbid generates problems that divide exactly.
	RemainderForbid RemainderPolicy = "forbid"

	// RemainderRequire generates problems with a non-zero remainder.
	RemainderRequire RemainderPolicy = "require"

	// RemainderAllow places no constraint on the remainder.
	RemainderAllow RemainderPolicy = "allow"
)

// DigitRange is an inclusive range of decimal digit counts.
type DigitRange struct {
	Min int
	Max int
}

// Contains reports whether n's digit count falls within the range.
func (r DigitRange) Contains(n int) bool {
	d := DigitCount(n)
	return d >= r.Min && d <= r.Max
}

// DigitCount returns the number of decimal digits in n (n >= 0).
func DigitCount(n int) int {
	if n < 10 {
		return 1
	}
	count := 0
	for n > 0 {
		n /= 10
		count++
	}
	return count
}
