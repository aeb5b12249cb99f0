package assessment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service validates input records, runs the calculation chain, and owns the
// exchange-catalog snapshot. The engine itself is pure; all state (stored
// assessments, catalog override) lives here and in the repository.
type Service struct {
	repo Repository
	log  zerolog.Logger

	mu      sync.RWMutex
	catalog Catalog
}

// NewService wires a service around a repository with the default catalog.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		log:     log.With().Str("component", "assessment").Logger(),
		catalog: DefaultCatalog(),
	}
}

// Default macro preset applied when no percentage targets are submitted:
// 20% protein / 30% fat / 50% carbohydrate, 85% complex carbohydrate,
// 10/35/55 saturated/poly/mono fat split.
const (
	defaultProteinPct     = 20
	defaultFatPct         = 30
	defaultCarbPct        = 50
	defaultCarbComplexPct = 85
	defaultFatSatPct      = 10
	defaultFatPolyPct     = 35
	defaultFatMonoPct     = 55
)

func (s *Service) validate(in *Input) (Sex, error) {
	sex, err := ParseSex(in.Sex)
	if err != nil {
		return "", err
	}
	if in.Age <= 0 {
		return "", fmt.Errorf("age must be positive")
	}
	if in.HeightCm <= 0 {
		return "", fmt.Errorf("height_cm must be positive")
	}
	if in.WeightKg <= 0 {
		return "", fmt.Errorf("weight_kg must be positive")
	}
	return sex, nil
}

// energyMode resolves the submitted mode and factor keys into the tagged
// variant. Unknown factor keys degrade to defaults rather than erroring.
func (s *Service) energyMode(in *Input) EnergyMode {
	if in.Mode == ModeFacility {
		activity, ok := FacilityActivityFactors[in.ActivityFactor]
		if !ok {
			activity = defaultFacilityActivity
		}
		stress, ok := StressFactors[in.StressFactor]
		if !ok {
			stress = defaultStress
		}
		malnutrition, ok := MalnutritionFactors[in.MalnutritionFactor]
		if !ok {
			malnutrition = defaultMalnutrition
		}
		return Facility{Activity: activity, Stress: stress, Malnutrition: malnutrition}
	}

	pal, ok := PALFactors[in.PAL]
	if !ok {
		pal = defaultPAL
	}
	return Ambulatory{PAL: pal}
}

// Evaluate runs the full calculation chain for one input record and stores
// the merged result. Identical inputs always produce identical result
// bodies; only the id and timestamp differ.
func (s *Service) Evaluate(ctx context.Context, in *Input) (*Assessment, error) {
	sex, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	equation := in.Equation
	if equation != EquationHarrisBenedict {
		equation = EquationMifflinStJeor
	}
	goal := in.Goal
	if goal != GoalLoss && goal != GoalGain {
		goal = GoalMaintenance
	}

	resting := RestingEnergy(equation, sex, in.WeightKg, in.HeightCm, in.Age)
	expenditure := TotalExpenditure(resting, s.energyMode(in), in.ThermicEffect)
	target := CalorieTarget(expenditure, goal)

	m := in.Macros
	if m.ProteinPct == 0 && m.FatPct == 0 && m.CarbPct == 0 {
		m.ProteinPct, m.FatPct, m.CarbPct = defaultProteinPct, defaultFatPct, defaultCarbPct
	}
	if m.CarbComplexPct == 0 {
		m.CarbComplexPct = defaultCarbComplexPct
	}
	if m.FatSaturatedPct == 0 && m.FatPolyPct == 0 && m.FatMonoPct == 0 {
		m.FatSaturatedPct, m.FatPolyPct, m.FatMonoPct = defaultFatSatPct, defaultFatPolyPct, defaultFatMonoPct
	}

	macros := AllocateMacros(target, m.ProteinPct, m.FatPct, m.CarbPct, in.WeightKg,
		m.CarbComplexPct, FatSplit{Saturated: m.FatSaturatedPct, Poly: m.FatPolyPct, Mono: m.FatMonoPct})

	body := EvaluateBodyComposition(sex, in.Age, in.HeightCm, in.WeightKg, in.Anthropometry)

	a := &Assessment{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		PatientName:  in.PatientName,
		Practitioner: in.Practitioner,
		Patient: PatientProfile{
			Sex:      sex,
			Age:      in.Age,
			HeightCm: in.HeightCm,
			WeightKg: in.WeightKg,
		},
		Energy: EnergyResult{
			Equation:        equation,
			RestingKcal:     round2(resting),
			ExpenditureKcal: expenditure,
			TargetKcal:      target,
			KcalPerKgRef:    KcalPerKg(target, body.AdjustedWeightKg, body.IdealWeightKg, in.WeightKg),
		},
		Macros:          macros,
		BodyComposition: body,
		Labs:            InterpretLabs(sex, in.Labs),
		Exchanges:       BuildExchangePlan(target, in.Mode == ModeFacility, s.CatalogSnapshot()),
		Sodium:          ConvertSodium(in.Sodium.TargetMg, in.Sodium.ConsumedMg),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("store assessment: %w", err)
	}

	s.log.Info().
		Str("assessment_id", a.ID.String()).
		Int("target_kcal", target).
		Str("goal", string(goal)).
		Msg("assessment evaluated")
	return a, nil
}

// GetByID returns a stored assessment.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns stored assessments in insertion order.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Delete removes a stored assessment.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// CatalogSnapshot returns a copy of the current exchange catalog. Plans
// built from a snapshot are unaffected by later overrides.
func (s *Service) CatalogSnapshot() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make(Catalog, len(s.catalog))
	for g, item := range s.catalog {
		cp[g] = item
	}
	return cp
}

// ApplyCatalogUpload parses an uploaded catalog file and, when valid, swaps
// in a new snapshot: the upload's groups merged over the default catalog. A
// malformed upload leaves the current snapshot untouched.
func (s *Service) ApplyCatalogUpload(filename string, data []byte) (Catalog, error) {
	override, err := ParseCatalogUpload(filename, data)
	if err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("catalog upload rejected")
		return nil, err
	}

	merged := DefaultCatalog()
	for g, item := range override {
		merged[g] = item
	}

	s.mu.Lock()
	s.catalog = merged
	s.mu.Unlock()

	s.log.Info().Int("groups_overridden", len(override)).Msg("exchange catalog replaced")
	return s.CatalogSnapshot(), nil
}

// ResetCatalog restores the built-in catalog.
func (s *Service) ResetCatalog() {
	s.mu.Lock()
	s.catalog = DefaultCatalog()
	s.mu.Unlock()
}
