package problemgen

// TierConfig describes one difficulty tier: the digit-count ranges for
// dividend and divisor, and the tier's remainder policy.
type TierConfig struct {
	Tier           int
	DividendDigits DigitRange
	DivisorDigits  DigitRange
	Policy         RemainderPolicy
}

// defaultTiers is the difficulty ladder, from single-digit divisors with
// exact division up to two-digit divisors with remainders.
var defaultTiers = []TierConfig{
	{Tier: 1, DividendDigits: DigitRange{2, 2}, DivisorDigits: DigitRange{1, 1}, Policy: RemainderForbid},
	{Tier: 2, DividendDigits: DigitRange{3, 3}, DivisorDigits: DigitRange{1, 1}, Policy: RemainderForbid},
	{Tier: 3, DividendDigits: DigitRange{3, 4}, DivisorDigits: DigitRange{1, 1}, Policy: RemainderAllow},
	{Tier: 4, DividendDigits: DigitRange{3, 4}, DivisorDigits: DigitRange{2, 2}, Policy: RemainderForbid},
	{Tier: 5, DividendDigits: DigitRange{4, 5}, DivisorDigits: DigitRange{2, 2}, Policy: RemainderAllow},
}

// Tiers returns the full tier ladder in ascending difficulty order.
func Tiers() []TierConfig {
	out := make([]TierConfig, len(defaultTiers))
	copy(out, defaultTiers)
	return out
}

// MaxTier is the highest configured difficulty tier.
func MaxTier() int {
	return defaultTiers[len(defaultTiers)-1].Tier
}

// TierByLevel returns the tier config for a 1-based difficulty level,
// clamping out-of-range levels to the nearest tier.
func TierByLevel(level int) TierConfig {
	if level < 1 {
		level = 1
	}
	if level > len(defaultTiers) {
		level = len(defaultTiers)
	}
	return defaultTiers[level-1]
}
