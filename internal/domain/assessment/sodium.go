package assessment

// Sodium budget conversion. Sodium-to-salt uses the 1 g salt ≈ 400 mg sodium
// approximation; a level teaspoon of salt weighs about 5 g.

// DefaultSodiumTargetMg is the default daily sodium allowance.
const DefaultSodiumTargetMg = 2300

// ConvertSodium resolves the remaining sodium allowance and expresses it as
// grams of table salt and level teaspoons. A zero target selects the
// default; consumption beyond the target floors the remainder at zero.
func ConvertSodium(targetMg, consumedMg float64) SodiumBudget {
	if targetMg <= 0 {
		targetMg = DefaultSodiumTargetMg
	}
	if consumedMg < 0 {
		consumedMg = 0
	}
	remaining := targetMg - consumedMg
	if remaining < 0 {
		remaining = 0
	}
	salt := round2(remaining / 400)
	return SodiumBudget{
		TargetMg:    targetMg,
		ConsumedMg:  consumedMg,
		RemainingMg: remaining,
		SaltG:       salt,
		Teaspoons:   round2(salt / 5),
	}
}
