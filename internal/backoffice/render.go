package backoffice

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go-backoffice/internal/recruitment"
)

var fieldLabels = map[Field]string{
	FieldOfferTitle:       "Offre Title",
	FieldShortDescription: "Short Description",
	FieldDeadline:         "Deadline",
	FieldCity:             "City",
	FieldAttachmentName:   "Attachment",
}

// RenderForm prints the edit target and the form values.
func RenderForm(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Form (%s)\n", v.Target)
	for _, f := range Fields {
		val := v.Form.Value(f)
		if f == FieldCity && val != "" {
			val = v.Form.City.Label()
		}
		fmt.Fprintf(tw, "  %s:\t%s\n", fieldLabels[f], val)
	}
	return tw.Flush()
}

// RenderTable prints the postings table.
func RenderTable(w io.Writer, postings []recruitment.Posting) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Internal Recruitments")
	fmt.Fprintln(tw, "ID\tOffre Title\tShort Description\tDeadline\tCity\tAttachment")
	if len(postings) == 0 {
		fmt.Fprintln(tw, "-\t(none)\t\t\t\t")
	}
	for _, p := range postings {
		deadline := ""
		if !p.Deadline.IsZero() {
			deadline = p.Deadline.Format(recruitment.DateLayout)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.OfferTitle, p.ShortDescription, deadline, p.City.Label(), p.AttachmentName)
	}
	return tw.Flush()
}

func Render(w io.Writer, v View) error {
	if err := RenderForm(w, v); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return RenderTable(w, v.Postings)
}

func (c *Controller) Render(w io.Writer) error {
	return Render(w, c.View())
}
