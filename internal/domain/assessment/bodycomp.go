package assessment

import "math"

// Body-composition indices. Every metric is computed independently from the
// measurements it needs; a missing measurement yields nil for that metric
// only and never blocks the others.

// BMI in kg/m², rounded to two decimals. The height denominator is floored
// at 1e-6 m so a degenerate zero height produces a huge number rather than a
// division panic.
func BMI(weightKg, heightCm float64) *float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return nil
	}
	m := heightCm / 100
	if m < 1e-6 {
		m = 1e-6
	}
	return ptr(round2(weightKg / (m * m)))
}

// BMIClass maps a BMI value onto the WHO class label. Informational only.
func BMIClass(bmi *float64) string {
	if bmi == nil {
		return ""
	}
	switch v := *bmi; {
	case v < 18.5:
		return "Underweight"
	case v < 25:
		return "Normal weight"
	case v < 30:
		return "Overweight"
	case v < 35:
		return "Obesity class I"
	case v < 40:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// WaistHipRatio rounded to two decimals; nil unless both circumferences are
// present.
func WaistHipRatio(waistCm, hipCm float64) *float64 {
	if waistCm <= 0 || hipCm <= 0 {
		return nil
	}
	return ptr(round2(waistCm / hipCm))
}

// WaistHeightRatio rounded to two decimals; nil unless both are present.
func WaistHeightRatio(waistCm, heightCm float64) *float64 {
	if waistCm <= 0 || heightCm <= 0 {
		return nil
	}
	return ptr(round2(waistCm / heightCm))
}

// Durnin-Womersley body-density coefficients, bracketed by age. The last
// bracket is the catch-all for any age past the table.
type dwCoefficient struct {
	maxAge int
	a, b   float64
}

var dwFemale = []dwCoefficient{
	{17, 1.1549, 0.0678},
	{29, 1.1599, 0.0717},
	{39, 1.1423, 0.0632},
	{49, 1.1333, 0.0612},
	{0, 1.1339, 0.0645},
}

var dwMale = []dwCoefficient{
	{17, 1.1620, 0.0630},
	{29, 1.1631, 0.0632},
	{39, 1.1422, 0.0544},
	{49, 1.1620, 0.0700},
	{0, 1.1715, 0.0779},
}

// SkinfoldPercentFat estimates percent body fat from the four Durnin-
// Womersley skinfold sites (biceps, triceps, subscapular, suprailiac, all in
// mm) via body density and the Siri equation. The skinfold sum is floored at
// 0.1 mm so the logarithm stays defined. Result is rounded to one decimal;
// nil when any site is missing.
func SkinfoldPercentFat(sex Sex, age int, bicepsMm, tricepsMm, subscapularMm, suprailiacMm float64) *float64 {
	if bicepsMm <= 0 || tricepsMm <= 0 || subscapularMm <= 0 || suprailiacMm <= 0 {
		return nil
	}
	sum := bicepsMm + tricepsMm + subscapularMm + suprailiacMm
	if sum < 0.1 {
		sum = 0.1
	}

	table := dwFemale
	if sex == SexMale {
		table = dwMale
	}
	coeff := table[len(table)-1]
	for _, c := range table[:len(table)-1] {
		if age <= c.maxAge {
			coeff = c
			break
		}
	}

	density := coeff.a - coeff.b*math.Log10(sum)
	return ptr(round1((4.95/density - 4.50) * 100))
}

// IdealBodyWeight is the Hamwi estimate: a sex-specific base at 152.4 cm
// (5 ft) plus an increment per inch above it. Heights under the base count
// zero inches rather than going negative. The value is unrounded; downstream
// computations consume it as-is and rounding happens only at the result edge.
func IdealBodyWeight(sex Sex, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	inchesOver := (heightCm - 152.4) / 2.54
	if inchesOver < 0 {
		inchesOver = 0
	}
	if sex == SexMale {
		return 48.0 + 2.7*inchesOver
	}
	return 45.5 + 2.2*inchesOver
}

// PercentOfIdeal is actual weight as a percentage of ideal, rounded to one
// decimal. A zero ideal degrades to a divisor of 1.
func PercentOfIdeal(actualKg, idealKg float64) float64 {
	div := idealKg
	if div == 0 {
		div = 1
	}
	return round1(100 * actualKg / div)
}

// AdjustedBodyWeight applies the 25% correction used for obese patients:
// ideal + 0.25 × (actual − ideal). The caller decides eligibility (BMI ≥ 30
// or percent-of-ideal ≥ 120); nil when either weight is missing.
func AdjustedBodyWeight(actualKg, idealKg float64) *float64 {
	if actualKg <= 0 || idealKg <= 0 {
		return nil
	}
	return ptr(round1(idealKg + 0.25*(actualKg-idealKg)))
}

// MidArmMuscleArea in cm² from mid-upper-arm circumference (cm) and the
// triceps skinfold (mm), rounded to two decimals; nil unless both are
// present.
func MidArmMuscleArea(muacCm, tricepsMm float64) *float64 {
	if muacCm <= 0 || tricepsMm <= 0 {
		return nil
	}
	tsfCm := tricepsMm / 10
	d := muacCm - math.Pi*tsfCm
	return ptr(round2(d * d / (4 * math.Pi)))
}

// EvaluateBodyComposition runs every index against the measurements at hand.
func EvaluateBodyComposition(sex Sex, age int, heightCm, weightKg float64, a Anthropometry) BodyCompositionResult {
	bmi := BMI(weightKg, heightCm)
	ideal := IdealBodyWeight(sex, heightCm)
	pctIdeal := PercentOfIdeal(weightKg, ideal)

	var adjusted *float64
	if (bmi != nil && *bmi >= 30) || pctIdeal >= 120 {
		adjusted = AdjustedBodyWeight(weightKg, ideal)
	}

	var bia *float64
	if a.BIAPercentFat > 0 {
		bia = ptr(round1(a.BIAPercentFat))
	}

	return BodyCompositionResult{
		BMI:                bmi,
		BMIClass:           BMIClass(bmi),
		WaistHipRatio:      WaistHipRatio(a.WaistCm, a.HipCm),
		WaistHeightRatio:   WaistHeightRatio(a.WaistCm, heightCm),
		PercentFatSkinfold: SkinfoldPercentFat(sex, age, a.BicepsMm, a.TricepsMm, a.SubscapularMm, a.SuprailiacMm),
		PercentFatBIA:      bia,
		IdealWeightKg:      round1(ideal),
		PercentOfIdeal:     pctIdeal,
		AdjustedWeightKg:   adjusted,
		MidArmMuscleArea:   MidArmMuscleArea(a.MUACCm, a.TricepsMm),
	}
}
