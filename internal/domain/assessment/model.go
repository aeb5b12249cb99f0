package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Enumerations
// ---------------------------------------------------------------------------

// Sex selects the branch used by every sex-dependent formula. There are
// exactly two branches; no formula computes a third category.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// ParseSex normalizes a free-form sex string ("F", "male", "Masculino", ...)
// into one of the two formula branches.
func ParseSex(s string) (Sex, error) {
	switch {
	case s == "":
		return "", fmt.Errorf("sex is required")
	case strings.HasPrefix(strings.ToLower(s), "m"):
		return SexMale, nil
	case strings.HasPrefix(strings.ToLower(s), "f"):
		return SexFemale, nil
	}
	return "", fmt.Errorf("invalid sex: %q", s)
}

// Equation selects the resting-energy equation.
type Equation string

const (
	EquationMifflinStJeor  Equation = "mifflin-st-jeor"
	EquationHarrisBenedict Equation = "harris-benedict"
)

// Goal drives the calorie-target adjustment applied to total expenditure.
type Goal string

const (
	GoalLoss        Goal = "loss"
	GoalMaintenance Goal = "maintenance"
	GoalGain        Goal = "gain"
)

// ---------------------------------------------------------------------------
// Energy mode (tagged variant)
// ---------------------------------------------------------------------------

// EnergyMode is the tagged variant for total-expenditure computation:
// ambulatory patients use a single physical-activity level, facility patients
// combine activity, stress and malnutrition factors. The two sets of factors
// are mutually exclusive by construction.
type EnergyMode interface {
	isEnergyMode()
}

// Ambulatory expenditure: resting energy × PAL.
type Ambulatory struct {
	PAL float64
}

func (Ambulatory) isEnergyMode() {}

// Facility expenditure: resting energy × activity × stress × malnutrition.
type Facility struct {
	Activity     float64
	Stress       float64
	Malnutrition float64
}

func (Facility) isEnergyMode() {}

// Named multiplier catalogs. Keys are what the capture surface submits;
// values are the clinical multipliers.
var (
	// PALFactors are ambulatory physical-activity levels (WHO/FAO approximate).
	PALFactors = map[string]float64{
		"sedentary": 1.2,
		"light":     1.4,
		"moderate":  1.6,
		"high":      1.75,
		"very-high": 2.0,
	}

	// FacilityActivityFactors are hospital activity factors.
	FacilityActivityFactors = map[string]float64{
		"ventilated": 1.1,
		"bed-rest":   1.2,
		"ambulating": 1.3,
	}

	// StressFactors are stress/injury factors.
	StressFactors = map[string]float64{
		"none":               1.0,
		"minor-surgery":      1.1,
		"major-surgery":      1.2,
		"moderate-infection": 1.3,
		"long-bone-fracture": 1.25,
		"polytrauma":         1.45,
		"head-injury":        1.6,
		"major-burns":        1.8,
	}

	// MalnutritionFactors reduce expenditure for depleted patients.
	MalnutritionFactors = map[string]float64{
		"none":            1.0,
		"moderate-severe": 0.7,
	}
)

// Fallback multipliers used when a submitted factor key is unrecognized.
// Unknown keys degrade to a neutral-ish default instead of erroring.
const (
	defaultPAL              = 1.2
	defaultFacilityActivity = 1.2
	defaultStress           = 1.0
	defaultMalnutrition     = 1.0
)

// ---------------------------------------------------------------------------
// Input record
// ---------------------------------------------------------------------------

// Anthropometry holds the optional anthropometric measurements. A zero value
// means "not measured" and the dependent metric is omitted from the result.
type Anthropometry struct {
	WaistCm       float64 `json:"waist_cm,omitempty"`
	HipCm         float64 `json:"hip_cm,omitempty"`
	MUACCm        float64 `json:"muac_cm,omitempty"`
	BicepsMm      float64 `json:"biceps_mm,omitempty"`
	TricepsMm     float64 `json:"triceps_mm,omitempty"`
	SubscapularMm float64 `json:"subscapular_mm,omitempty"`
	SuprailiacMm  float64 `json:"suprailiac_mm,omitempty"`
	BIAPercentFat float64 `json:"bia_percent_fat,omitempty"`
}

// LabValues holds the optional laboratory panel. Zero means "not submitted"
// and the lab is excluded from interpretation. Units are fixed: mg/dL for
// chemistry, g/dL for hemoglobin, ng/mL ferritin, µUI/mL insulin.
type LabValues struct {
	GlucoseMgDl      float64 `json:"glucose_mg_dl,omitempty"`
	InsulinUIUMl     float64 `json:"insulin_uiu_ml,omitempty"`
	HbA1cPct         float64 `json:"hba1c_pct,omitempty"`
	TotalCholesterol float64 `json:"total_cholesterol_mg_dl,omitempty"`
	HDL              float64 `json:"hdl_mg_dl,omitempty"`
	LDL              float64 `json:"ldl_mg_dl,omitempty"`
	Triglycerides    float64 `json:"triglycerides_mg_dl,omitempty"`
	Creatinine       float64 `json:"creatinine_mg_dl,omitempty"`
	ALT              float64 `json:"alt_u_l,omitempty"`
	AST              float64 `json:"ast_u_l,omitempty"`
	Hemoglobin       float64 `json:"hemoglobin_g_dl,omitempty"`
	Ferritin         float64 `json:"ferritin_ng_ml,omitempty"`
	VitaminD         float64 `json:"vitamin_d_ng_ml,omitempty"`
	VitaminB12       float64 `json:"vitamin_b12_pg_ml,omitempty"`
	TSH              float64 `json:"tsh_miu_l,omitempty"`
	Urea             float64 `json:"urea_mg_dl,omitempty"`
	CRP              float64 `json:"crp_mg_l,omitempty"`
}

// MacroTargets are the requested dietary percentage targets. They need not
// sum to 100 (or to the parent fat percentage); the allocator renormalizes
// proportionally instead of rejecting. All-zero targets select the standard
// preset (20/30/50, 85% complex carbohydrate, 10/35/55 fat split).
type MacroTargets struct {
	ProteinPct      int `json:"protein_pct,omitempty"`
	FatPct          int `json:"fat_pct,omitempty"`
	CarbPct         int `json:"carb_pct,omitempty"`
	CarbComplexPct  int `json:"carb_complex_pct,omitempty"`
	FatSaturatedPct int `json:"fat_saturated_pct,omitempty"`
	FatPolyPct      int `json:"fat_poly_pct,omitempty"`
	FatMonoPct      int `json:"fat_mono_pct,omitempty"`
}

// SodiumInput configures the sodium budget. Zero target selects the default
// 2300 mg/day recommendation.
type SodiumInput struct {
	TargetMg   float64 `json:"target_mg,omitempty"`
	ConsumedMg float64 `json:"consumed_mg,omitempty"`
}

// Input is the raw record captured per evaluation. Sex, age, height and
// weight are mandatory and must be positive; everything else is optional and
// degrades gracefully when absent.
type Input struct {
	PatientName  string `json:"patient_name,omitempty"`
	Practitioner string `json:"practitioner,omitempty"`

	Sex      string  `json:"sex"`
	Age      int     `json:"age"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`

	Equation Equation `json:"equation,omitempty"`
	Goal     Goal     `json:"goal,omitempty"`

	// Mode is "ambulatory" (default) or "facility"; it selects which factor
	// fields below apply.
	Mode               string `json:"mode,omitempty"`
	PAL                string `json:"pal,omitempty"`
	ActivityFactor     string `json:"activity_factor,omitempty"`
	StressFactor       string `json:"stress_factor,omitempty"`
	MalnutritionFactor string `json:"malnutrition_factor,omitempty"`
	ThermicEffect      bool   `json:"thermic_effect,omitempty"`

	Anthropometry Anthropometry `json:"anthropometry,omitempty"`
	Labs          LabValues     `json:"labs,omitempty"`
	Macros        MacroTargets  `json:"macros,omitempty"`
	Sodium        SodiumInput   `json:"sodium,omitempty"`
}

const (
	ModeAmbulatory = "ambulatory"
	ModeFacility   = "facility"
)

// ---------------------------------------------------------------------------
// Result records
// ---------------------------------------------------------------------------

// PatientProfile echoes the validated mandatory quadruple back into the
// result record.
type PatientProfile struct {
	Sex      Sex     `json:"sex"`
	Age      int     `json:"age"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// EnergyResult carries the resolved energy chain. RestingKcal is the raw
// equation output and may be negative for extreme inputs; it is deliberately
// not clamped.
type EnergyResult struct {
	Equation        Equation `json:"equation"`
	RestingKcal     float64  `json:"resting_kcal"`
	ExpenditureKcal int      `json:"expenditure_kcal"`
	TargetKcal      int      `json:"target_kcal"`
	KcalPerKgRef    float64  `json:"kcal_per_kg_ref"`
}

// FatSplitPct is the resolved fat sub-split in percentage points of total
// energy. The three values sum to the parent fat percentage (mono absorbs
// the rounding remainder).
type FatSplitPct struct {
	Saturated float64 `json:"saturated"`
	Poly      float64 `json:"poly"`
	Mono      float64 `json:"mono"`
}

// MacronutrientPlan is the fully normalized macronutrient allocation.
// ProteinPct + FatPct + CarbPct always equals exactly 100.
type MacronutrientPlan struct {
	ProteinPct int `json:"protein_pct"`
	FatPct     int `json:"fat_pct"`
	CarbPct    int `json:"carb_pct"`

	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbG         float64 `json:"carb_g"`
	CarbComplexG  float64 `json:"carb_complex_g"`
	CarbSimpleG   float64 `json:"carb_simple_g"`
	FatSaturatedG float64 `json:"fat_saturated_g"`
	FatPolyG      float64 `json:"fat_poly_g"`
	FatMonoG      float64 `json:"fat_mono_g"`

	FatSplitPct FatSplitPct `json:"fat_split_pct"`

	ProteinGPerKg float64 `json:"protein_g_per_kg"`
	CarbGPerKg    float64 `json:"carb_g_per_kg"`
}

// BodyCompositionResult holds the derived body-composition indices. Pointer
// fields are nil when the inputs they depend on were not provided; the
// absence of one input never blocks the others.
type BodyCompositionResult struct {
	BMI                *float64 `json:"bmi,omitempty"`
	BMIClass           string   `json:"bmi_class,omitempty"`
	WaistHipRatio      *float64 `json:"waist_hip_ratio,omitempty"`
	WaistHeightRatio   *float64 `json:"waist_height_ratio,omitempty"`
	PercentFatSkinfold *float64 `json:"percent_fat_skinfold,omitempty"`
	PercentFatBIA      *float64 `json:"percent_fat_bia,omitempty"`
	IdealWeightKg      float64  `json:"ideal_weight_kg"`
	PercentOfIdeal     float64  `json:"percent_of_ideal"`
	AdjustedWeightKg   *float64 `json:"adjusted_weight_kg,omitempty"`
	MidArmMuscleArea   *float64 `json:"mid_arm_muscle_area_cm2,omitempty"`
}

// LabResult is one interpreted laboratory value.
type LabResult struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Flag  LabFlag `json:"flag"`
	Label string  `json:"label"`
}

// ExchangeAllocation is one food group's daily allowance with its per-portion
// catalog content.
type ExchangeAllocation struct {
	Group         string       `json:"group"`
	DailyPortions int          `json:"daily_portions"`
	Item          ExchangeItem `json:"item"`
}

// MealAllocation is a meal slot's share of every group's daily count.
// Shares are rounded to one decimal and deliberately not forced to re-sum to
// the daily integer.
type MealAllocation struct {
	Meal     string             `json:"meal"`
	Portions map[string]float64 `json:"portions"`
}

// ExchangePlan is the scaled daily portion plan plus its five-meal
// distribution, in canonical group order.
type ExchangePlan struct {
	Groups []ExchangeAllocation `json:"groups"`
	Meals  []MealAllocation     `json:"meals"`
}

// SodiumBudget is the resolved sodium allowance.
type SodiumBudget struct {
	TargetMg    float64 `json:"target_mg"`
	ConsumedMg  float64 `json:"consumed_mg"`
	RemainingMg float64 `json:"remaining_mg"`
	SaltG       float64 `json:"salt_g"`
	Teaspoons   float64 `json:"teaspoons"`
}

// Assessment is the merged result record consumed by the rendering and
// interop exporters. It is a value object: computed once per submitted input
// record and never mutated afterwards.
type Assessment struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	PatientName  string    `json:"patient_name,omitempty"`
	Practitioner string    `json:"practitioner,omitempty"`

	Patient         PatientProfile        `json:"patient"`
	Energy          EnergyResult          `json:"energy"`
	Macros          MacronutrientPlan     `json:"macros"`
	BodyComposition BodyCompositionResult `json:"body_composition"`
	Labs            []LabResult           `json:"labs"`
	Exchanges       ExchangePlan          `json:"exchanges"`
	Sodium          SodiumBudget          `json:"sodium"`
}
