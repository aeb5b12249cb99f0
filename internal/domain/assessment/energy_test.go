package assessment

import (
	"math"
	"testing"
)

func TestMifflinStJeor(t *testing.T) {
	tests := []struct {
		name     string
		sex      Sex
		weightKg float64
		heightCm float64
		age      int
		want     float64
	}{
		{"female 30y 165cm 70kg", SexFemale, 70, 165, 30, 1420.25},
		{"male 30y 165cm 70kg", SexMale, 70, 165, 30, 1586.25},
		{"male 45y 180cm 90kg", SexMale, 90, 180, 45, 1805},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MifflinStJeor(tt.sex, tt.weightKg, tt.heightCm, tt.age)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MifflinStJeor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHarrisBenedict(t *testing.T) {
	got := HarrisBenedict(SexMale, 90, 180, 45)
	want := 66.47 + 13.75*90 + 5.003*180 - 6.755*45
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("HarrisBenedict() = %v, want %v", got, want)
	}

	got = HarrisBenedict(SexFemale, 70, 165, 30)
	want = 655.09 + 9.563*70 + 1.850*165 - 4.676*30
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("HarrisBenedict() = %v, want %v", got, want)
	}
}

func TestRestingEnergyUnclampedNegative(t *testing.T) {
	// Extreme inputs can drive the equation negative; the value must flow
	// through expenditure and target arithmetic without crashing or being
	// clamped.
	resting := MifflinStJeor(SexFemale, 2, 50, 110)
	if resting >= 0 {
		t.Fatalf("expected negative resting energy, got %v", resting)
	}

	exp := TotalExpenditure(resting, Ambulatory{PAL: 1.6}, false)
	if exp >= 0 {
		t.Errorf("expenditure should stay negative, got %d", exp)
	}

	// The loss floor still applies at the target stage.
	if got := CalorieTarget(exp, GoalLoss); got != 1000 {
		t.Errorf("CalorieTarget(loss) = %d, want floor 1000", got)
	}
	if got := CalorieTarget(exp, GoalMaintenance); got != exp {
		t.Errorf("CalorieTarget(maintenance) = %d, want %d", got, exp)
	}
}

func TestTotalExpenditure(t *testing.T) {
	tests := []struct {
		name    string
		resting float64
		mode    EnergyMode
		thermic bool
		want    int
	}{
		{"ambulatory moderate", 1420.25, Ambulatory{PAL: 1.6}, false, 2272},
		{"ambulatory moderate thermic", 1420.25, Ambulatory{PAL: 1.6}, true, 2500},
		{"facility bed rest stressed", 1500, Facility{Activity: 1.2, Stress: 1.3, Malnutrition: 1.0}, false, 2340},
		{"facility malnourished", 1500, Facility{Activity: 1.2, Stress: 1.0, Malnutrition: 0.7}, false, 1260},
		{"facility thermic", 1500, Facility{Activity: 1.2, Stress: 1.0, Malnutrition: 1.0}, true, 1980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalExpenditure(tt.resting, tt.mode, tt.thermic); got != tt.want {
				t.Errorf("TotalExpenditure() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalorieTarget(t *testing.T) {
	tests := []struct {
		name        string
		expenditure int
		goal        Goal
		want        int
	}{
		{"maintenance unchanged", 2272, GoalMaintenance, 2272},
		{"loss high expenditure", 2272, GoalLoss, 1872},
		{"loss low expenditure", 1500, GoalLoss, 1300},
		{"loss boundary 1600", 1600, GoalLoss, 1200},
		{"loss floor", 1100, GoalLoss, 1000},
		{"gain", 2000, GoalGain, 2200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalorieTarget(tt.expenditure, tt.goal); got != tt.want {
				t.Errorf("CalorieTarget(%d, %s) = %d, want %d", tt.expenditure, tt.goal, got, tt.want)
			}
		})
	}
}

func TestCalorieTargetLossFloor(t *testing.T) {
	for exp := -500; exp <= 3000; exp += 37 {
		if got := CalorieTarget(exp, GoalLoss); got < 1000 {
			t.Fatalf("CalorieTarget(%d, loss) = %d, below floor", exp, got)
		}
	}
}

func TestKcalPerKg(t *testing.T) {
	tests := []struct {
		name     string
		kcal     int
		adjusted *float64
		ideal    float64
		actual   float64
		want     float64
	}{
		{"adjusted preferred", 2000, ptr(80.0), 60, 100, 25},
		{"ideal fallback", 2000, nil, 60, 100, 33.33},
		{"actual fallback", 2000, nil, 0, 100, 20},
		{"zero weights", 2000, nil, 0, 0, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KcalPerKg(tt.kcal, tt.adjusted, tt.ideal, tt.actual); got != tt.want {
				t.Errorf("KcalPerKg() = %v, want %v", got, tt.want)
			}
		})
	}
}
