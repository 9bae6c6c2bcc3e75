package application_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/internal/application"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := application.Normalize(application.Submission{
		LastName:   "  Dupont ",
		FirstName:  "<b>Jean</b>",
		Age:        "29\x00",
		Phone:      "\t+229 97 00 00 00\n",
		TargetRole: `<a href="https://evil.example">Matelot</a>`,
	})

	assert.Equal(t, application.Submission{
		LastName:   "Dupont",
		FirstName:  "Jean",
		Age:        "29",
		Phone:      "+229 97 00 00 00",
		TargetRole: "Matelot",
	}, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sub       application.Submission
		wantMsg   string
		wantField string
	}{
		{
			name: "complete",
			sub:  application.Submission{LastName: "Dupont", FirstName: "Jean", TargetRole: "Matelot"},
		},
		{
			name:      "missing role",
			sub:       application.Submission{LastName: "Dupont", FirstName: "Jean"},
			wantMsg:   "missing required fields: metier",
			wantField: "metier",
		},
		{
			name:      "blank names",
			sub:       application.Submission{LastName: " ", FirstName: "", TargetRole: "Matelot"},
			wantMsg:   "missing required fields: nom, prenom",
			wantField: "nom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := application.Validate(tt.sub)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var verr *application.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantMsg, verr.Message)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSubmission_FullName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jean Dupont", application.Submission{FirstName: "Jean", LastName: "Dupont"}.FullName())
	assert.Equal(t, "Dupont", application.Submission{LastName: "Dupont"}.FullName())
}
