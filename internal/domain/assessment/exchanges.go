package assessment

import "math"

// Food-exchange planning. A catalog maps each of the seven exchange groups
// to the nutritional content of one portion; the planner scales fixed base
// daily counts by the calorie target and spreads them across five meal
// slots.

// Canonical exchange group identifiers.
const (
	GroupVegetables  = "vegetables"
	GroupFruits      = "fruits"
	GroupGrains      = "grains"
	GroupLegumes     = "legumes"
	GroupDairy       = "dairy"
	GroupLeanProtein = "lean-protein"
	GroupFats        = "fats"
)

// GroupOrder is the canonical presentation order of the seven groups.
var GroupOrder = []string{
	GroupVegetables,
	GroupFruits,
	GroupGrains,
	GroupLegumes,
	GroupDairy,
	GroupLeanProtein,
	GroupFats,
}

// baseDailyPortions are the reference daily counts at 2000 kcal.
var baseDailyPortions = map[string]int{
	GroupVegetables:  4,
	GroupFruits:      2,
	GroupGrains:      5,
	GroupLegumes:     1,
	GroupDairy:       1,
	GroupLeanProtein: 4,
	GroupFats:        4,
}

// ExchangeItem is the per-portion content of one exchange group.
type ExchangeItem struct {
	Kcal     float64  `json:"kcal"`
	CarbG    float64  `json:"carb_g"`
	ProteinG float64  `json:"protein_g"`
	FatG     float64  `json:"fat_g"`
	Portion  string   `json:"portion"`
	Examples []string `json:"examples,omitempty"`
}

// Catalog maps group identifier to per-portion content.
type Catalog map[string]ExchangeItem

// Substitution is an equivalent-portion alternative within a group.
type Substitution struct {
	Name     string  `json:"name"`
	Kcal     float64 `json:"kcal"`
	CarbG    float64 `json:"carb_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	Equiv    string  `json:"equiv"`
}

// DefaultCatalog returns a fresh copy of the built-in seven-group catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		GroupVegetables: {
			Kcal: 25, CarbG: 5, ProteinG: 2, FatG: 0,
			Portion:  "1 cup raw / 1/2 cup cooked",
			Examples: []string{"lettuce", "spinach", "broccoli", "chayote"},
		},
		GroupFruits: {
			Kcal: 60, CarbG: 15, ProteinG: 0, FatG: 0,
			Portion:  "1 small piece / 1/2 cup chopped",
			Examples: []string{"apple", "tangerine", "papaya 3/4 cup"},
		},
		GroupGrains: {
			Kcal: 80, CarbG: 15, ProteinG: 2, FatG: 1,
			Portion:  "1/2 cup cooked / 1 slice bread",
			Examples: []string{"rice 1/2 cup", "pasta 1/2 cup", "corn cake 1/3 unit (50 g)", "bread 1 slice"},
		},
		GroupLegumes: {
			Kcal: 100, CarbG: 18, ProteinG: 7, FatG: 1,
			Portion:  "1/2 cup cooked",
			Examples: []string{"black beans", "lentils", "pinto beans"},
		},
		GroupDairy: {
			Kcal: 90, CarbG: 12, ProteinG: 8, FatG: 2,
			Portion:  "1 cup milk / plain yogurt",
			Examples: []string{"skim milk 1 cup", "plain yogurt 1 cup"},
		},
		GroupLeanProtein: {
			Kcal: 110, CarbG: 0, ProteinG: 21, FatG: 3,
			Portion:  "30 g cooked",
			Examples: []string{"skinless chicken", "turkey", "white fish", "tuna in water 1/2 can"},
		},
		GroupFats: {
			Kcal: 45, CarbG: 0, ProteinG: 0, FatG: 5,
			Portion:  "1 tsp (5 g)",
			Examples: []string{"oil 1 tsp", "avocado 1/8 unit", "walnuts 6"},
		},
	}
}

// DefaultSubstitutions returns the built-in equivalent-portion sub-catalog.
func DefaultSubstitutions() map[string][]Substitution {
	return map[string][]Substitution{
		GroupGrains: {
			{Name: "corn cake (60 g)", Kcal: 160, CarbG: 30, ProteinG: 3, FatG: 2, Equiv: "~2 grain exchanges"},
			{Name: "cassava (1/2 cup)", Kcal: 80, CarbG: 19, ProteinG: 1, FatG: 0, Equiv: "~1 grain exchange"},
		},
		GroupFruits: {
			{Name: "plantain (1/2 medium)", Kcal: 60, CarbG: 15, ProteinG: 1, FatG: 0, Equiv: "~1 fruit exchange"},
		},
	}
}

// ScaleFactor maps the calorie target onto the portion multiplier:
// kcal/2000 clamped to [1.0, 2.4] for ambulatory plans, with the upper bound
// tightened to 2.2 for facility plans.
func ScaleFactor(kcal int, facility bool) float64 {
	f := float64(kcal) / 2000
	if f < 1.0 {
		f = 1.0
	}
	upper := 2.4
	if facility {
		upper = 2.2
	}
	if f > upper {
		f = upper
	}
	return f
}

// DailyPortions scales the base counts by the calorie target. A non-positive
// target zeroes every group.
func DailyPortions(kcal int, facility bool) map[string]int {
	counts := make(map[string]int, len(baseDailyPortions))
	if kcal <= 0 {
		for g := range baseDailyPortions {
			counts[g] = 0
		}
		return counts
	}
	f := ScaleFactor(kcal, facility)
	for g, base := range baseDailyPortions {
		counts[g] = int(math.Round(float64(base) * f))
	}
	return counts
}

// mealSplit is the five-slot fraction table; fractions sum to 1.
var mealSplit = []struct {
	Meal     string
	Fraction float64
}{
	{"breakfast", 0.25},
	{"mid-morning-snack", 0.10},
	{"lunch", 0.30},
	{"afternoon-snack", 0.10},
	{"dinner", 0.25},
}

// DistributeMeals spreads each group's daily count across the five meal
// slots. Per-slot shares are rounded to one decimal and deliberately not
// re-summed to the daily integer.
func DistributeMeals(daily map[string]int) []MealAllocation {
	out := make([]MealAllocation, 0, len(mealSplit))
	for _, slot := range mealSplit {
		portions := make(map[string]float64, len(daily))
		for g, n := range daily {
			portions[g] = round1(float64(n) * slot.Fraction)
		}
		out = append(out, MealAllocation{Meal: slot.Meal, Portions: portions})
	}
	return out
}

// BuildExchangePlan assembles the full plan for a calorie target against the
// given catalog snapshot.
func BuildExchangePlan(kcal int, facility bool, cat Catalog) ExchangePlan {
	daily := DailyPortions(kcal, facility)

	groups := make([]ExchangeAllocation, 0, len(GroupOrder))
	for _, g := range GroupOrder {
		groups = append(groups, ExchangeAllocation{
			Group:         g,
			DailyPortions: daily[g],
			Item:          cat[g],
		})
	}

	return ExchangePlan{
		Groups: groups,
		Meals:  DistributeMeals(daily),
	}
}
