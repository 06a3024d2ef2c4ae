package recruitment_test

import (
	"errors"
	"testing"
	"time"

	"go-backoffice/internal/recruitment"
	recruitmenterrors "go-backoffice/internal/recruitment/errors"

	"github.com/stretchr/testify/assert"
)

func TestParseCity(t *testing.T) {
	tests := []struct {
		raw  string
		want recruitment.City
	}{
		{"rabat", recruitment.CityRabat},
		{" Fes ", recruitment.CityFes},
		{"rabat&fes", recruitment.CityRabatAndFes},
		{"rabat_and_fes", recruitment.CityRabatAndFes},
	}
	for _, tt := range tests {
		got, err := recruitment.ParseCity(tt.raw)
		assert.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}

	_, err := recruitment.ParseCity("casablanca")
	assert.True(t, errors.Is(err, recruitmenterrors.ErrInvalidCity))
}

func TestCityLabel(t *testing.T) {
	assert.Equal(t, "Rabat & Fes", recruitment.CityRabatAndFes.Label())
	assert.Equal(t, "Fes", recruitment.CityFes.Label())
	assert.Equal(t, "tanger", recruitment.City("tanger").Label())
}

func TestParseDeadline(t *testing.T) {
	d, err := recruitment.ParseDeadline("2024-01-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = recruitment.ParseDeadline("01/01/2024")
	assert.True(t, errors.Is(err, recruitmenterrors.ErrInvalidDeadline))
}

func TestPosting_MissingFields(t *testing.T) {
	full := recruitment.Posting{
		OfferTitle:       "Engineer",
		ShortDescription: "Backend",
		Deadline:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		City:             recruitment.CityRabat,
		AttachmentName:   "cv.pdf",
	}
	assert.Empty(t, full.MissingFields())

	blank := full
	blank.OfferTitle = "   "
	blank.Deadline = time.Time{}
	assert.Equal(t, []string{"offre_title", "deadline"}, blank.MissingFields())

	assert.Len(t, recruitment.Posting{}.MissingFields(), 5)
}

func TestSchemaFor(t *testing.T) {
	s, err := recruitment.SchemaFor(2)
	assert.NoError(t, err)
	assert.Equal(t, "Title", s.OfferTitle)

	v1, _ := recruitment.SchemaFor(1)
	assert.NotContains(t, v1.Fields(), "attachment_name")
	assert.Len(t, v1.Columns(), 4)

	assert.Equal(t, recruitment.SchemaV3, recruitment.CurrentSchema)
	assert.Len(t, recruitment.CurrentSchema.Columns(), 5)

	_, err = recruitment.SchemaFor(4)
	assert.Error(t, err)
}
