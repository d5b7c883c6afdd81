package rewards

import "sort"

// curatedSubjects open the roster in a fixed, hand-picked order so the first
// unlocks are the crowd-pleasers.
var curatedSubjects = []string{
	"Axolotl",
	"Red Panda",
	"Sea Otter",
	"Fennec Fox",
	"Snowy Owl",
	"Narwhal",
	"Quokka",
	"Snow Leopard",
}

// extraSubjects fill out the roster after the curated prefix. Order here is
// irrelevant; DefaultRoster sorts them for a stable sequence.
var extraSubjects = []string{
	"Pangolin",
	"Hedgehog",
	"Chameleon",
	"Manatee",
	"Puffin",
	"Wombat",
	"Gecko",
	"Armadillo",
	"Tamarin",
	"Kingfisher",
	"Ocelot",
	"Seahorse",
	"Ibex",
	"Lynx",
	"Marmot",
	"Toucan",
}

// DefaultRoster returns the full reward roster: the curated prefix followed
// by the remaining subjects in lexicographic order. The result is a fresh
// slice; callers may keep it.
func DefaultRoster() []string {
	rest := make([]string, len(extraSubjects))
	copy(rest, extraSubjects)
	sort.Strings(rest)

	out := make([]string, 0, len(curatedSubjects)+len(rest))
	out = append(out, curatedSubjects...)
	return append(out, rest...)
}
