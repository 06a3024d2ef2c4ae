package recruitment

import (
	"fmt"
	"strings"
	"time"

	"go-backoffice/internal/liststore"
	recruitmenterrors "go-backoffice/internal/recruitment/errors"
)

// DateLayout is the wire and display format of a deadline.
const DateLayout = "2006-01-02"

// DefaultListName is the list holding postings when LIST_NAME is unset.
const DefaultListName = "BackOfficeV1"

type City string

const (
	CityRabat       City = "rabat"
	CityFes         City = "fes"
	CityRabatAndFes City = "rabat&fes"
)

var Cities = []City{CityRabat, CityFes, CityRabatAndFes}

var cityLabels = map[City]string{
	CityRabat:       "Rabat",
	CityFes:         "Fes",
	CityRabatAndFes: "Rabat & Fes",
}

// ParseCity accepts the stored values, case-insensitively, plus the
// rabat_and_fes alias.
func ParseCity(raw string) (City, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "rabat_and_fes" {
		return CityRabatAndFes, nil
	}
	c := City(v)
	if !c.Valid() {
		return "", recruitmenterrors.ErrInvalidCity.WithErr(fmt.Errorf("got %q", raw))
	}
	return c, nil
}

func (c City) Valid() bool {
	_, ok := cityLabels[c]
	return ok
}

func (c City) Label() string {
	if l, ok := cityLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseDeadline parses a YYYY-MM-DD date as UTC midnight.
func ParseDeadline(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, recruitmenterrors.ErrInvalidDeadline.WithErr(err)
	}
	return d, nil
}

// Posting is one internal recruitment offer. ID is zero until the store
// has assigned one.
type Posting struct {
	ID               int       `json:"id,omitempty"`
	OfferTitle       string    `json:"offre_title"`
	ShortDescription string    `json:"short_description"`
	Deadline         time.Time `json:"deadline"`
	City             City      `json:"city"`
	AttachmentName   string    `json:"attachment_name"`
}

func (p Posting) Persisted() bool {
	return p.ID > 0
}

// MissingFields names the empty business fields using their storage names
// in the current schema, in form order.
func (p Posting) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.OfferTitle) == "" {
		missing = append(missing, CurrentSchema.OfferTitle)
	}
	if strings.TrimSpace(p.ShortDescription) == "" {
		missing = append(missing, CurrentSchema.ShortDescription)
	}
	if p.Deadline.IsZero() {
		missing = append(missing, CurrentSchema.Deadline)
	}
	if p.City == "" {
		missing = append(missing, CurrentSchema.City)
	}
	if strings.TrimSpace(p.AttachmentName) == "" {
		missing = append(missing, CurrentSchema.AttachmentName)
	}
	return missing
}

// Schema maps posting fields to list field names for one revision of the list.
// AttachmentName is empty for revisions without an attachment field.
type Schema struct {
	Version          int
	OfferTitle       string
	ShortDescription string
	Deadline         string
	City             string
	AttachmentName   string
}

var (
	SchemaV1 = Schema{
		Version:          1,
		OfferTitle:       "offre_title",
		ShortDescription: "short_description",
		Deadline:         "deadline",
		City:             "city",
	}
	// v2 stored the title under the generic Title field.
	SchemaV2 = Schema{
		Version:          2,
		OfferTitle:       "Title",
		ShortDescription: "short_description",
		Deadline:         "deadline",
		City:             "city",
		AttachmentName:   "attachment_name",
	}
	SchemaV3 = Schema{
		Version:          3,
		OfferTitle:       "offre_title",
		ShortDescription: "short_description",
		Deadline:         "deadline",
		City:             "city",
		AttachmentName:   "attachment_name",
	}

	CurrentSchema = SchemaV3
)

// SchemaFor returns the schema of a list revision.
func SchemaFor(version int) (Schema, error) {
	switch version {
	case 1:
		return SchemaV1, nil
	case 2:
		return SchemaV2, nil
	case 3:
		return SchemaV3, nil
	default:
		return Schema{}, fmt.Errorf("unknown list schema version %d", version)
	}
}

// Fields lists the business fields in select order.
func (s Schema) Fields() []string {
	fields := []string{s.OfferTitle, s.ShortDescription, s.Deadline, s.City}
	if s.AttachmentName != "" {
		fields = append(fields, s.AttachmentName)
	}
	return fields
}

// Columns describes the list table for liststore.GormStore.EnsureList.
func (s Schema) Columns() []liststore.Column {
	cols := []liststore.Column{
		{Name: s.OfferTitle, Type: "text"},
		{Name: s.ShortDescription, Type: "text"},
		{Name: s.Deadline, Type: "date"},
		{Name: s.City, Type: "text"},
	}
	if s.AttachmentName != "" {
		cols = append(cols, liststore.Column{Name: s.AttachmentName, Type: "text"})
	}
	return cols
}
