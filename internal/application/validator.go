package application

import (
	"strings"

	"github.com/icsbenin/candidature/pkg/sanitizer"
)

// Normalize strips markup and surrounding whitespace from every text field.
func Normalize(s Submission) Submission {
	return Submission{
		LastName:      sanitizer.CleanText(s.LastName),
		FirstName:     sanitizer.CleanText(s.FirstName),
		Nationality:   sanitizer.CleanText(s.Nationality),
		MaritalStatus: sanitizer.CleanText(s.MaritalStatus),
		Age:           sanitizer.CleanText(s.Age),
		Phone:         sanitizer.CleanText(s.Phone),
		TargetRole:    sanitizer.CleanText(s.TargetRole),
	}
}

// Validate rejects a submission whose last name, first name or target role
// is blank. The message lists the missing form fields.
func Validate(s Submission) error {
	required := []struct {
		field string
		value string
	}{
		{FieldLastName, s.LastName},
		{FieldFirstName, s.FirstName},
		{FieldTargetRole, s.TargetRole},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return &ValidationError{
		Field:   missing[0],
		Message: "missing required fields: " + strings.Join(missing, ", "),
	}
}
