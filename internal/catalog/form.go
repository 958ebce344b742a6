package catalog

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/daterange"
)

// SubmissionForm is the contribute form as entered by a contributor.
type SubmissionForm struct {
	State              string `json:"state" validate:"required,max=100"`
	Town               string `json:"town" validate:"required,max=200"`
	FirstSeen          string `json:"first_seen" validate:"required,max=20"`
	LastSeen           string `json:"last_seen" validate:"max=20"`
	Type               string `json:"type" validate:"required,max=100"`
	Color              string `json:"color" validate:"required,max=50"`
	Dimensions         string `json:"dimensions" validate:"max=200"`
	Manuscript         string `json:"manuscript" validate:"max=500"`
	Rarity             string `json:"rarity" validate:"max=100"`
	Description        string `json:"description" validate:"max=5000"`
	CitationReferences string `json:"citation_references" validate:"max=5000"`
}

// Normalize trims every field in place.
func (f *SubmissionForm) Normalize() {
	for _, p := range []*string{
		&f.State, &f.Town, &f.FirstSeen, &f.LastSeen, &f.Type, &f.Color,
		&f.Dimensions, &f.Manuscript, &f.Rarity, &f.Description, &f.CitationReferences,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// Name builds the entry name, "Town, State Type".
func (f SubmissionForm) Name() string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", strings.TrimSpace(f.Town), strings.TrimSpace(f.State), strings.TrimSpace(f.Type)))
}

// DateRange joins the first and last seen years into the stored form.
func (f SubmissionForm) DateRange() string {
	if strings.TrimSpace(f.FirstSeen) == "" {
		return ""
	}
	return daterange.Join(f.FirstSeen, f.LastSeen)
}

// Submission builds a pending submission owned by userID.
func (f SubmissionForm) Submission(userID, submitterName, imageURL string) Submission {
	return Submission{
		UserID:        userID,
		SubmitterName: submitterName,
		Marking: Marking{
			Name:      f.Name(),
			Town:      strings.TrimSpace(f.Town),
			State:     strings.TrimSpace(f.State),
			DateRange: f.DateRange(),
			Type:      strings.TrimSpace(f.Type),
			Color:     strings.TrimSpace(f.Color),
			ImageURL:  imageURL,
		},
		Details: Details{
			Description:        strings.TrimSpace(f.Description),
			CitationReferences: strings.TrimSpace(f.CitationReferences),
			Dimensions:         strings.TrimSpace(f.Dimensions),
			Manuscript:         strings.TrimSpace(f.Manuscript),
			Rarity:             strings.TrimSpace(f.Rarity),
		},
		Status: StatusPending,
	}
}

// ToRecord converts an approved submission into the catalog record that
// publishing creates.
func (s Submission) ToRecord(valuation string) Record {
	return Record{
		Marking:   s.Marking,
		Details:   s.Details,
		Valuation: valuation,
	}
}
