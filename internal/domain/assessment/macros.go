package assessment

import "math"

// FatSplit is the requested saturated/poly/mono split of the fat share, in
// arbitrary proportional units.
type FatSplit struct {
	Saturated int
	Poly      int
	Mono      int
}

// AllocateMacros normalizes the requested percentage targets and converts
// them to grams for the given calorie target.
//
// The three top-level percentages are rescaled proportionally to sum to
// exactly 100, with carbohydrate absorbing the integer-rounding remainder
// (floored at zero, fat giving back any overshoot).
// The fat sub-split is rescaled the same way against the resolved fat
// percentage, with monounsaturated fat absorbing its remainder. Zero-sum
// requests degrade via a max(1, sum) denominator instead of erroring.
func AllocateMacros(kcal int, proteinPct, fatPct, carbPct int, weightKg float64, carbComplexPct int, split FatSplit) MacronutrientPlan {
	if kcal < 0 {
		kcal = 0
	}

	total := proteinPct + fatPct + carbPct
	if total < 1 {
		total = 1
	}
	pp := int(math.Round(100 * float64(proteinPct) / float64(total)))
	fp := int(math.Round(100 * float64(fatPct) / float64(total)))
	cp := 100 - pp - fp
	// Complementary .5 ties can round both pp and fp up, pushing the carb
	// remainder below zero; fat yields the overshoot back.
	if cp < 0 {
		fp += cp
		cp = 0
	}

	proteinG := round1(float64(kcal) * float64(pp) / 100 / 4)
	fatG := round1(float64(kcal) * float64(fp) / 100 / 9)
	carbG := round1(float64(kcal) * float64(cp) / 100 / 4)

	var proteinGPerKg, carbGPerKg float64
	if weightKg != 0 {
		proteinGPerKg = round2(proteinG / weightKg)
		carbGPerKg = round2(carbG / weightKg)
	}

	carbComplexG := round1(carbG * float64(carbComplexPct) / 100)
	carbSimpleG := round1(carbG - carbComplexG)

	subtotal := split.Saturated + split.Poly + split.Mono
	if subtotal < 1 {
		subtotal = 1
	}
	satPct := float64(fp) * float64(split.Saturated) / float64(subtotal)
	polyPct := float64(fp) * float64(split.Poly) / float64(subtotal)
	monoPct := float64(fp) - satPct - polyPct

	return MacronutrientPlan{
		ProteinPct: pp,
		FatPct:     fp,
		CarbPct:    cp,

		ProteinG:      proteinG,
		FatG:          fatG,
		CarbG:         carbG,
		CarbComplexG:  carbComplexG,
		CarbSimpleG:   carbSimpleG,
		FatSaturatedG: round1(float64(kcal) * satPct / 100 / 9),
		FatPolyG:      round1(float64(kcal) * polyPct / 100 / 9),
		FatMonoG:      round1(float64(kcal) * monoPct / 100 / 9),

		FatSplitPct: FatSplitPct{
			Saturated: round1(satPct),
			Poly:      round1(polyPct),
			Mono:      round1(monoPct),
		},

		ProteinGPerKg: proteinGPerKg,
		CarbGPerKg:    carbGPerKg,
	}
}
