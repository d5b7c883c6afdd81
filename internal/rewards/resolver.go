package rewards

// Interval is the number of solved problems between reward milestones.
const Interval = 5

// Resolver maps solved-problem counts to reward milestones over a fixed
// roster. All methods are pure; the resolver holds no mutable state.
type Resolver struct {
	roster   []string
	interval int
}

// NewResolver creates a Resolver over the default roster and interval.
func NewResolver() *Resolver {
	return &Resolver{roster: DefaultRoster(), interval: Interval}
}

// NewResolverWith creates a Resolver with an explicit roster and interval,
// for tests and custom reward packs.
func NewResolverWith(roster []string, interval int) *Resolver {
	return &Resolver{roster: roster, interval: interval}
}

// Milestone returns the highest milestone reached at a solved count.
func (r *Resolver) Milestone(solvedCount int) int {
	return solvedCount / r.interval
}

// SubjectFor returns the roster subject for a 1-based milestone.
// ok is false when the milestone lies past the roster.
func (r *Resolver) SubjectFor(milestone int) (string, bool) {
	if milestone < 1 || milestone > len(r.roster) {
		return "", false
	}
	return r.roster[milestone-1], true
}

// Crossed returns every milestone in (Milestone(old), Milestone(new)] in
// ascending order. This is the catch-up behavior: a jump across several
// intervals unlocks every intervening milestone, none skipped. Milestones
// past the roster are returned with PoolExhausted set rather than erroring.
func (r *Resolver) Crossed(oldSolved, newSolved int) []Crossing {
	from := r.Milestone(oldSolved)
	to := r.Milestone(newSolved)

	var out []Crossing
	for m := from + 1; m <= to; m++ {
		c := Crossing{Milestone: m, SolvedCount: m * r.interval}
		if subject, ok := r.SubjectFor(m); ok {
			c.SubjectName = subject
		} else {
			c.PoolExhausted = true
		}
		out = append(out, c)
	}
	return out
}

// NearMilestone reports whether a solved count is one or two problems short
// of the next milestone — the prefetch lookahead trigger.
func (r *Resolver) NearMilestone(solvedCount int) bool {
	mod := solvedCount % r.interval
	return mod == r.interval-1 || mod == r.interval-2
}

// Next returns the upcoming milestone crossing for a solved count, used to
// pick the prefetch subject.
func (r *Resolver) Next(solvedCount int) Crossing {
	m := r.Milestone(solvedCount) + 1
	c := Crossing{Milestone: m, SolvedCount: m * r.interval}
	if subject, ok := r.SubjectFor(m); ok {
		c.SubjectName = subject
	} else {
		c.PoolExhausted = true
	}
	return c
}

// RosterSize returns the number of subjects in the roster.
func (r *Resolver) RosterSize() int {
	return len(r.roster)
}
