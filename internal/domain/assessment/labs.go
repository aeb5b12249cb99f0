package assessment

// Laboratory interpretation. Each recognized analyte is flagged against a
// fixed threshold table; four of them (HDL, creatinine, hemoglobin,
// ferritin) carry sex-dependent cutoffs. Values at or below zero are treated
// as "not submitted" and skipped. Output order is fixed regardless of which
// labs were submitted.

// LabFlag is the qualitative classification of a lab value.
type LabFlag string

const (
	LabFlagOK      LabFlag = "ok"
	LabFlagWarning LabFlag = "warning"
	LabFlagLow     LabFlag = "abnormal-low"
	LabFlagHigh    LabFlag = "abnormal-high"
)

// HOMAIR computes the HOMA insulin-resistance index from fasting glucose
// (mg/dL, converted to mmol/L) and fasting insulin (µUI/mL), rounded to two
// decimals. Nil unless both values are present.
func HOMAIR(glucoseMgDl, insulinUIUMl float64) *float64 {
	if glucoseMgDl <= 0 || insulinUIUMl <= 0 {
		return nil
	}
	return ptr(round2((glucoseMgDl / 18) * insulinUIUMl / 22.5))
}

// InterpretLabs flags every submitted analyte. HOMA-IR is derived from
// glucose and insulin and, when derivable, interleaved in canonical position
// like any other lab.
func InterpretLabs(sex Sex, v LabValues) []LabResult {
	out := make([]LabResult, 0, 17)

	add := func(name string, value float64, flag LabFlag, label string) {
		out = append(out, LabResult{Name: name, Value: value, Flag: flag, Label: label})
	}

	if g := v.GlucoseMgDl; g > 0 {
		switch {
		case g < 70:
			add("Glucose", g, LabFlagWarning, "Hypoglycemia")
		case g < 100:
			add("Glucose", g, LabFlagOK, "Normal")
		case g < 126:
			add("Glucose", g, LabFlagWarning, "Prediabetes range")
		default:
			add("Glucose", g, LabFlagHigh, "Diabetes range")
		}
	}

	if a := v.HbA1cPct; a > 0 {
		switch {
		case a < 5.7:
			add("HbA1c", a, LabFlagOK, "Normal")
		case a < 6.5:
			add("HbA1c", a, LabFlagWarning, "Prediabetes range")
		default:
			add("HbA1c", a, LabFlagHigh, "Diabetes range")
		}
	}

	if homa := HOMAIR(v.GlucoseMgDl, v.InsulinUIUMl); homa != nil {
		if *homa < 2.5 {
			add("HOMA-IR", *homa, LabFlagOK, "Acceptable")
		} else {
			add("HOMA-IR", *homa, LabFlagWarning, "Insulin resistance")
		}
	}

	if l := v.LDL; l > 0 {
		if l < 100 {
			add("LDL cholesterol", l, LabFlagOK, "Optimal")
		} else {
			add("LDL cholesterol", l, LabFlagHigh, "Elevated")
		}
	}

	if h := v.HDL; h > 0 {
		low := 50.0
		if sex == SexMale {
			low = 40.0
		}
		if h >= low {
			add("HDL cholesterol", h, LabFlagOK, "Protective")
		} else {
			add("HDL cholesterol", h, LabFlagLow, "Low")
		}
	}

	if t := v.Triglycerides; t > 0 {
		if t < 150 {
			add("Triglycerides", t, LabFlagOK, "Normal")
		} else {
			add("Triglycerides", t, LabFlagHigh, "Elevated")
		}
	}

	if c := v.TotalCholesterol; c > 0 {
		if c < 200 {
			add("Total cholesterol", c, LabFlagOK, "Desirable")
		} else {
			add("Total cholesterol", c, LabFlagHigh, "Elevated")
		}
	}

	if c := v.Creatinine; c > 0 {
		high := 1.1
		if sex == SexMale {
			high = 1.3
		}
		switch {
		case c > high:
			add("Creatinine", c, LabFlagHigh, "Elevated")
		case c < 0.5:
			add("Creatinine", c, LabFlagWarning, "Low")
		default:
			add("Creatinine", c, LabFlagOK, "Normal")
		}
	}

	if a := v.ALT; a > 0 {
		if a <= 40 {
			add("ALT", a, LabFlagOK, "Normal")
		} else {
			add("ALT", a, LabFlagHigh, "Elevated")
		}
	}

	if a := v.AST; a > 0 {
		if a <= 40 {
			add("AST", a, LabFlagOK, "Normal")
		} else {
			add("AST", a, LabFlagHigh, "Elevated")
		}
	}

	if h := v.Hemoglobin; h > 0 {
		low, high := 12.0, 16.0
		if sex == SexMale {
			low, high = 13.5, 17.5
		}
		switch {
		case h < low:
			add("Hemoglobin", h, LabFlagLow, "Anemia range")
		case h > high:
			add("Hemoglobin", h, LabFlagWarning, "Elevated")
		default:
			add("Hemoglobin", h, LabFlagOK, "Normal")
		}
	}

	if f := v.Ferritin; f > 0 {
		low, high := 12.0, 150.0
		if sex == SexMale {
			low, high = 24.0, 336.0
		}
		switch {
		case f < low:
			add("Ferritin", f, LabFlagLow, "Iron deficiency range")
		case f > high:
			add("Ferritin", f, LabFlagWarning, "Elevated")
		default:
			add("Ferritin", f, LabFlagOK, "Normal")
		}
	}

	if d := v.VitaminD; d > 0 {
		switch {
		case d < 20:
			add("Vitamin D", d, LabFlagLow, "Deficiency")
		case d < 30:
			add("Vitamin D", d, LabFlagWarning, "Insufficiency")
		default:
			add("Vitamin D", d, LabFlagOK, "Sufficient")
		}
	}

	if b := v.VitaminB12; b > 0 {
		switch {
		case b < 200:
			add("Vitamin B12", b, LabFlagLow, "Deficiency range")
		case b > 900:
			add("Vitamin B12", b, LabFlagWarning, "Elevated")
		default:
			add("Vitamin B12", b, LabFlagOK, "Normal")
		}
	}

	if t := v.TSH; t > 0 {
		if t >= 0.4 && t <= 4.0 {
			add("TSH", t, LabFlagOK, "Normal")
		} else {
			add("TSH", t, LabFlagWarning, "Out of range")
		}
	}

	if u := v.Urea; u > 0 {
		if u >= 15 && u <= 45 {
			add("Urea", u, LabFlagOK, "Normal")
		} else {
			add("Urea", u, LabFlagWarning, "Out of range")
		}
	}

	if c := v.CRP; c > 0 {
		if c <= 5 {
			add("CRP", c, LabFlagOK, "Acceptable")
		} else {
			add("CRP", c, LabFlagHigh, "Inflammation")
		}
	}

	return out
}
