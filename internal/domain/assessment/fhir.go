package assessment

import "time"

// FHIR R4 interop mappings. Resources are built as generic maps so optional
// elements can be omitted cleanly; only the elements the assessment can
// populate are emitted.

// ToFHIRNutritionOrder converts the assessment into a FHIR NutritionOrder
// resource carrying the calorie target and macronutrient grams as oral-diet
// nutrient constraints.
func (a *Assessment) ToFHIRNutritionOrder() map[string]interface{} {
	patientDisplay := a.PatientName
	if patientDisplay == "" {
		patientDisplay = "Unnamed patient"
	}

	order := map[string]interface{}{
		"resourceType": "NutritionOrder",
		"id":           a.ID.String(),
		"status":       "active",
		"intent":       "order",
		"dateTime":     a.CreatedAt.Format(time.RFC3339),
		"patient": map[string]interface{}{
			"display": patientDisplay,
		},
		"oralDiet": map[string]interface{}{
			"type": []interface{}{
				map[string]interface{}{"text": "Oral diet, calculated"},
			},
			"schedule": []interface{}{
				map[string]interface{}{
					"repeat": map[string]interface{}{
						"boundsDuration": map[string]interface{}{"value": 30, "unit": "days"},
					},
				},
			},
			"nutrient": []interface{}{
				nutrientConstraint("Energy", float64(a.Energy.TargetKcal), "kcal/d"),
				nutrientConstraint("Protein", a.Macros.ProteinG, "g/d"),
				nutrientConstraint("Fat", a.Macros.FatG, "g/d"),
				nutrientConstraint("Carbohydrate", a.Macros.CarbG, "g/d"),
			},
			"texture": []interface{}{
				map[string]interface{}{
					"modifier": map[string]interface{}{"text": "Normal"},
				},
			},
		},
	}

	if a.Practitioner != "" {
		order["orderer"] = map[string]interface{}{"display": a.Practitioner}
	}
	return order
}

// ToFHIRNutritionIntake converts the assessment into a FHIR NutritionIntake
// resource recording the planned daily intake.
func (a *Assessment) ToFHIRNutritionIntake() map[string]interface{} {
	patientDisplay := a.PatientName
	if patientDisplay == "" {
		patientDisplay = "Unnamed patient"
	}

	return map[string]interface{}{
		"resourceType":       "NutritionIntake",
		"id":                 a.ID.String(),
		"status":             "completed",
		"occurrenceDateTime": a.CreatedAt.Format(time.RFC3339),
		"subject": map[string]interface{}{
			"display": patientDisplay,
		},
		"consumedItem": []interface{}{
			map[string]interface{}{
				"type": map[string]interface{}{"text": "Daily meal plan"},
				"amount": map[string]interface{}{
					"value": float64(a.Energy.TargetKcal),
					"unit":  "kcal",
				},
				"nutrient": []interface{}{
					nutrientIntake("Protein", a.Macros.ProteinG),
					nutrientIntake("Fat", a.Macros.FatG),
					nutrientIntake("Carbohydrate", a.Macros.CarbG),
				},
			},
		},
		"recorded": a.CreatedAt.Format(time.RFC3339),
	}
}

func nutrientConstraint(name string, value float64, unit string) map[string]interface{} {
	return map[string]interface{}{
		"modifier": map[string]interface{}{"text": name},
		"amount":   map[string]interface{}{"value": value, "unit": unit},
	}
}

func nutrientIntake(name string, grams float64) map[string]interface{} {
	return map[string]interface{}{
		"item":   map[string]interface{}{"text": name},
		"amount": map[string]interface{}{"value": grams, "unit": "g"},
	}
}
