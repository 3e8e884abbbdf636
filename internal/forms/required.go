package forms

import (
	"fmt"
	"strings"
)

// RequiredFieldError lists the required fields a record is missing.
type RequiredFieldError struct {
	Fields []string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("forms: missing required fields: %s", strings.Join(e.Fields, ", "))
}

type requiredField struct {
	name  string
	value string
}

func checkRequired(fields []requiredField) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &RequiredFieldError{Fields: missing}
	}
	return nil
}

// CheckRequired verifies the fields the work-order form marks as mandatory.
func (w WorkOrder) CheckRequired() error {
	return checkRequired([]requiredField{
		{"einsatzort", w.Einsatzort},
		{"rgEmpfaenger", w.RgEmpfaenger},
		{"artDerArbeit", w.ArtDerArbeit},
		{"datum", w.Datum},
	})
}

// CheckRequired verifies the fields the daily-report form marks as mandatory.
func (d DailyReport) CheckRequired() error {
	return checkRequired([]requiredField{
		{"datum", d.Datum},
		{"auftraggeber", d.Auftraggeber},
		{"ort", d.Ort},
	})
}
