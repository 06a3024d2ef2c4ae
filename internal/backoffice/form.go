package backoffice

import (
	"fmt"
	"strings"
	"time"

	"go-backoffice/internal/recruitment"
)

// Field names a form input. Values match the list field names of the
// current schema.
type Field string

const (
	FieldOfferTitle       Field = "offre_title"
	FieldShortDescription Field = "short_description"
	FieldDeadline         Field = "deadline"
	FieldCity             Field = "city"
	FieldAttachmentName   Field = "attachment_name"
)

var Fields = []Field{FieldOfferTitle, FieldShortDescription, FieldDeadline, FieldCity, FieldAttachmentName}

var fieldAliases = map[string]Field{
	"title":       FieldOfferTitle,
	"description": FieldShortDescription,
	"attachment":  FieldAttachmentName,
}

func ParseField(raw string) (Field, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := fieldAliases[v]; ok {
		return f, nil
	}
	for _, f := range Fields {
		if string(f) == v {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", raw)
}

// Form holds the typed values of the posting form. The zero value is the
// cleared form.
type Form struct {
	OfferTitle       string
	ShortDescription string
	Deadline         time.Time
	City             recruitment.City
	AttachmentName   string
}

func FormFromPosting(p recruitment.Posting) Form {
	return Form{
		OfferTitle:       p.OfferTitle,
		ShortDescription: p.ShortDescription,
		Deadline:         p.Deadline,
		City:             p.City,
		AttachmentName:   p.AttachmentName,
	}
}

// Set stores raw into field. An empty raw value clears the field; deadline
// and city values must parse.
func (f *Form) Set(field Field, raw string) error {
	raw = strings.TrimSpace(raw)
	switch field {
	case FieldOfferTitle:
		f.OfferTitle = raw
	case FieldShortDescription:
		f.ShortDescription = raw
	case FieldAttachmentName:
		f.AttachmentName = raw
	case FieldDeadline:
		if raw == "" {
			f.Deadline = time.Time{}
			return nil
		}
		d, err := recruitment.ParseDeadline(raw)
		if err != nil {
			return err
		}
		f.Deadline = d
	case FieldCity:
		if raw == "" {
			f.City = ""
			return nil
		}
		c, err := recruitment.ParseCity(raw)
		if err != nil {
			return err
		}
		f.City = c
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Posting builds the posting the form describes. id is zero for a new posting.
func (f Form) Posting(id int) recruitment.Posting {
	return recruitment.Posting{
		ID:               id,
		OfferTitle:       f.OfferTitle,
		ShortDescription: f.ShortDescription,
		Deadline:         f.Deadline,
		City:             f.City,
		AttachmentName:   f.AttachmentName,
	}
}

func (f Form) Missing() []string {
	return f.Posting(0).MissingFields()
}

func (f Form) Value(field Field) string {
	switch field {
	case FieldOfferTitle:
		return f.OfferTitle
	case FieldShortDescription:
		return f.ShortDescription
	case FieldDeadline:
		if f.Deadline.IsZero() {
			return ""
		}
		return f.Deadline.Format(recruitment.DateLayout)
	case FieldCity:
		return string(f.City)
	case FieldAttachmentName:
		return f.AttachmentName
	}
	return ""
}
