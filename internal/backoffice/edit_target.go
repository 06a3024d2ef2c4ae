package backoffice

import (
	"fmt"

	"go-backoffice/internal/recruitment"
)

// EditTarget says whether the form creates a new posting or edits a copy of
// an existing one.
type EditTarget struct {
	posting recruitment.Posting
	holding bool
}

func Empty() EditTarget {
	return EditTarget{}
}

func Holding(p recruitment.Posting) EditTarget {
	return EditTarget{posting: p, holding: true}
}

// Held returns the posting being edited.
func (t EditTarget) Held() (recruitment.Posting, bool) {
	return t.posting, t.holding
}

func (t EditTarget) IsEmpty() bool {
	return !t.holding
}

func (t EditTarget) String() string {
	if !t.holding {
		return "new posting"
	}
	return fmt.Sprintf("editing posting %d", t.posting.ID)
}
