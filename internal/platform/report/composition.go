package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/nutritionsays/nutrition/internal/domain/assessment"
)

// Structured clinical-note rendering. A Document is the editable,
// JSON-serializable note a downstream system can restyle or convert; every
// number in it comes from the assessment record, never recomputed here.

// Table is a simple header+rows grid inside a section.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Section is one titled block of the note.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Table      *Table   `json:"table,omitempty"`
}

// Document is the structured clinical note.
type Document struct {
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	PatientName  string    `json:"patient_name,omitempty"`
	Practitioner string    `json:"practitioner,omitempty"`
	Sections     []Section `json:"sections"`
}

func f1(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

func f2(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimSuffix(s, "0")
	return strings.TrimSuffix(s, ".0")
}

// BuildDocument assembles the note sections from a computed assessment.
func BuildDocument(a *assessment.Assessment) *Document {
	doc := &Document{
		Title:        "Clinical Nutrition Note",
		Date:         a.CreatedAt.Format(time.DateOnly),
		PatientName:  a.PatientName,
		Practitioner: a.Practitioner,
	}

	doc.Sections = append(doc.Sections, evaluationSection(a))
	doc.Sections = append(doc.Sections, requirementsSection(a))
	doc.Sections = append(doc.Sections, exchangeSection(a))
	doc.Sections = append(doc.Sections, mealSection(a))
	if len(a.Labs) > 0 {
		doc.Sections = append(doc.Sections, labsSection(a))
	}
	doc.Sections = append(doc.Sections, sodiumSection(a))
	return doc
}

func evaluationSection(a *assessment.Assessment) Section {
	b := a.BodyComposition
	paras := []string{
		fmt.Sprintf("Patient: %s, %d y, height %s cm, weight %s kg.",
			a.Patient.Sex, a.Patient.Age, f1(a.Patient.HeightCm), f1(a.Patient.WeightKg)),
	}
	if b.BMI != nil {
		paras = append(paras, fmt.Sprintf("BMI %s kg/m² (%s).", f2(*b.BMI), b.BMIClass))
	}
	paras = append(paras, fmt.Sprintf("Ideal weight %s kg (%s%% of ideal).",
		f1(b.IdealWeightKg), f1(b.PercentOfIdeal)))
	if b.AdjustedWeightKg != nil {
		paras = append(paras, fmt.Sprintf("Adjusted weight %s kg.", f1(*b.AdjustedWeightKg)))
	}
	if b.WaistHipRatio != nil {
		paras = append(paras, fmt.Sprintf("Waist/hip ratio %s.", f2(*b.WaistHipRatio)))
	}
	if b.WaistHeightRatio != nil {
		paras = append(paras, fmt.Sprintf("Waist/height ratio %s.", f2(*b.WaistHeightRatio)))
	}
	if b.PercentFatSkinfold != nil {
		paras = append(paras, fmt.Sprintf("Body fat (skinfolds) %s%%.", f1(*b.PercentFatSkinfold)))
	}
	if b.PercentFatBIA != nil {
		paras = append(paras, fmt.Sprintf("Body fat (BIA) %s%%.", f1(*b.PercentFatBIA)))
	}
	if b.MidArmMuscleArea != nil {
		paras = append(paras, fmt.Sprintf("Mid-arm muscle area %s cm².", f2(*b.MidArmMuscleArea)))
	}
	return Section{Title: "Evaluation", Paragraphs: paras}
}

func requirementsSection(a *assessment.Assessment) Section {
	m := a.Macros
	return Section{
		Title: "Requirements",
		Paragraphs: []string{
			fmt.Sprintf("Energy: %d kcal/d (%s kcal/kg; resting %s kcal, expenditure %d kcal).",
				a.Energy.TargetKcal, f2(a.Energy.KcalPerKgRef), f2(a.Energy.RestingKcal), a.Energy.ExpenditureKcal),
			fmt.Sprintf("Protein: %d%% = %s g (%s g/kg).", m.ProteinPct, f1(m.ProteinG), f2(m.ProteinGPerKg)),
			fmt.Sprintf("Fat: %d%% = %s g (saturated %s g, poly %s g, mono %s g).",
				m.FatPct, f1(m.FatG), f1(m.FatSaturatedG), f1(m.FatPolyG), f1(m.FatMonoG)),
			fmt.Sprintf("Carbohydrate: %d%% = %s g (complex %s g, simple %s g; %s g/kg).",
				m.CarbPct, f1(m.CarbG), f1(m.CarbComplexG), f1(m.CarbSimpleG), f2(m.CarbGPerKg)),
		},
	}
}

func exchangeSection(a *assessment.Assessment) Section {
	table := &Table{
		Headers: []string{"Group", "Portions/day", "Portion size", "kcal", "Carb g", "Protein g", "Fat g"},
	}
	for _, g := range a.Exchanges.Groups {
		table.Rows = append(table.Rows, []string{
			g.Group,
			fmt.Sprintf("%d", g.DailyPortions),
			g.Item.Portion,
			f1(g.Item.Kcal),
			f1(g.Item.CarbG),
			f1(g.Item.ProteinG),
			f1(g.Item.FatG),
		})
	}
	return Section{Title: "Food exchange plan", Table: table}
}

func mealSection(a *assessment.Assessment) Section {
	table := &Table{Headers: []string{"Meal"}}
	for _, g := range a.Exchanges.Groups {
		table.Headers = append(table.Headers, g.Group)
	}
	for _, meal := range a.Exchanges.Meals {
		row := []string{meal.Meal}
		for _, g := range a.Exchanges.Groups {
			row = append(row, f1(meal.Portions[g.Group]))
		}
		table.Rows = append(table.Rows, row)
	}
	return Section{Title: "Meal distribution", Table: table}
}

func labsSection(a *assessment.Assessment) Section {
	table := &Table{Headers: []string{"Lab", "Value", "Flag", "Interpretation"}}
	for _, lab := range a.Labs {
		table.Rows = append(table.Rows, []string{
			lab.Name, f2(lab.Value), string(lab.Flag), lab.Label,
		})
	}
	return Section{Title: "Laboratory", Table: table}
}

func sodiumSection(a *assessment.Assessment) Section {
	s := a.Sodium
	return Section{
		Title: "Sodium",
		Paragraphs: []string{
			fmt.Sprintf("Target %s mg; consumed %s mg; remaining %s mg.",
				f1(s.TargetMg), f1(s.ConsumedMg), f1(s.RemainingMg)),
			fmt.Sprintf("Remaining allowance is about %s g of salt (%s tsp).", f2(s.SaltG), f2(s.Teaspoons)),
		},
	}
}
