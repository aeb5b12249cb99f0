package assessment

import "math"

// Energy chain: resting energy -> total expenditure -> calorie target.
// Resting energy is the raw equation output and is intentionally not clamped;
// implausible inputs surface as implausible (even negative) numbers rather
// than being silently floored.

// MifflinStJeor computes resting energy expenditure in kcal/day.
func MifflinStJeor(sex Sex, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return base + 5
	}
	return base - 161
}

// HarrisBenedict computes resting energy expenditure in kcal/day using the
// revised Harris-Benedict coefficients.
func HarrisBenedict(sex Sex, weightKg, heightCm float64, age int) float64 {
	if sex == SexMale {
		return 66.47 + 13.75*weightKg + 5.003*heightCm - 6.755*float64(age)
	}
	return 655.09 + 9.563*weightKg + 1.850*heightCm - 4.676*float64(age)
}

// RestingEnergy dispatches on the selected equation. Unknown equations fall
// back to Mifflin-St Jeor, the default for ambulatory adults.
func RestingEnergy(eq Equation, sex Sex, weightKg, heightCm float64, age int) float64 {
	if eq == EquationHarrisBenedict {
		return HarrisBenedict(sex, weightKg, heightCm, age)
	}
	return MifflinStJeor(sex, weightKg, heightCm, age)
}

// TotalExpenditure applies the mode-specific multipliers to resting energy
// and rounds to the nearest kcal. The thermic-effect surcharge is a flat
// +10% in both modes.
func TotalExpenditure(resting float64, mode EnergyMode, thermicEffect bool) int {
	total := resting
	switch m := mode.(type) {
	case Ambulatory:
		total *= m.PAL
		if thermicEffect {
			total *= 1.10
		}
	case Facility:
		if thermicEffect {
			total *= 1.10
		}
		total *= m.Activity * m.Stress * m.Malnutrition
	}
	return int(math.Round(total))
}

// CalorieTarget adjusts total expenditure for the dietary goal. Weight loss
// subtracts 400 kcal above 1600 kcal of expenditure and 200 below, never
// dropping under the 1000 kcal/day floor. Weight gain adds a flat 200.
func CalorieTarget(expenditure int, goal Goal) int {
	switch goal {
	case GoalLoss:
		deficit := 200
		if expenditure >= 1600 {
			deficit = 400
		}
		target := expenditure - deficit
		if target < 1000 {
			target = 1000
		}
		return target
	case GoalGain:
		return expenditure + 200
	}
	return expenditure
}

// KcalPerKg divides the calorie target by the reference weight: adjusted
// weight when present, else ideal weight, else actual weight. A zero
// reference degrades to a divisor of 1.
func KcalPerKg(targetKcal int, adjustedKg *float64, idealKg, actualKg float64) float64 {
	ref := actualKg
	if idealKg > 0 {
		ref = idealKg
	}
	if adjustedKg != nil && *adjustedKg > 0 {
		ref = *adjustedKg
	}
	if ref == 0 {
		ref = 1
	}
	return round2(float64(targetKcal) / ref)
}
