package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, ParseStatus("approved"))
	assert.Equal(t, StatusRejected, ParseStatus(" REJECTED "))
	assert.Equal(t, StatusRevision, ParseStatus("revision"))
	assert.Equal(t, StatusPending, ParseStatus(""))
	assert.Equal(t, StatusPending, ParseStatus("archived"))
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Needs Revision", StatusRevision.Label())
	assert.Equal(t, "Pending", Status("").Label())
}

func TestMarking_HasImage(t *testing.T) {
	assert.False(t, Marking{}.HasImage())
	assert.False(t, Marking{ImageURL: "  "}.HasImage())
	assert.True(t, Marking{ImageURL: "https://img/1.png"}.HasImage())
}

func TestEntryAdapters(t *testing.T) {
	created := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := Record{
		ID:        "r1",
		Marking:   Marking{Name: "Boston"},
		Details:   Details{Rarity: ""},
		Valuation: "Scarce",
		CreatedAt: created,
	}
	sub := Submission{
		ID:      "s1",
		Marking: Marking{Name: "Salem"},
		Details: Details{Rarity: "R3"},
		Status:  StatusPending,
	}

	entries := append(FromRecords([]Record{rec}), FromSubmission(sub))

	assert.Equal(t, "r1", entries[0].Key())
	assert.Equal(t, "Boston", entries[0].Base().Name)
	assert.Equal(t, "Scarce", entries[0].Valuation())
	assert.Equal(t, created, entries[0].Created())
	assert.Equal(t, "Scarce", RarityLabel(entries[0]))

	assert.Equal(t, "s1", entries[1].Key())
	assert.Empty(t, entries[1].Valuation())
	assert.Equal(t, "R3", RarityLabel(entries[1]))

	_, isRecord := entries[0].(RecordEntry)
	_, isSub := entries[1].(SubmissionEntry)
	assert.True(t, isRecord)
	assert.True(t, isSub)
}

func TestSubmissionForm(t *testing.T) {
	f := SubmissionForm{
		State:     " Massachusetts ",
		Town:      "Boston ",
		FirstSeen: "1825",
		LastSeen:  " 1845",
		Type:      "Circular Date Stamp",
		Color:     "Black",
	}

	assert.Equal(t, "Boston, Massachusetts Circular Date Stamp", f.Name())
	assert.Equal(t, "1825-1845", f.DateRange())

	s := f.Submission("u1", "Ann Smith", "")
	assert.Equal(t, StatusPending, s.Status)
	assert.Equal(t, "Boston", s.Town)
	assert.Equal(t, "Massachusetts", s.State)
	assert.Equal(t, "u1", s.UserID)

	f.LastSeen = ""
	assert.Equal(t, "1825", f.DateRange())
	f.FirstSeen = ""
	assert.Empty(t, f.DateRange())
}

func TestSubmissionForm_Normalize(t *testing.T) {
	f := SubmissionForm{Town: "  Salem ", Rarity: " R2\n"}
	f.Normalize()
	assert.Equal(t, "Salem", f.Town)
	assert.Equal(t, "R2", f.Rarity)
}

func TestSubmission_ToRecord(t *testing.T) {
	s := Submission{
		ID:      "s1",
		UserID:  "u1",
		Marking: Marking{Name: "Salem", DateRange: "1810"},
		Details: Details{Description: "d"},
		Status:  StatusApproved,
	}
	r := s.ToRecord("Common")
	assert.Empty(t, r.ID)
	assert.Equal(t, "Salem", r.Name)
	assert.Equal(t, "d", r.Description)
	assert.Equal(t, "Common", r.Valuation)
}

func TestEntry_MarshalJSON(t *testing.T) {
	b, err := json.Marshal([]Entry{
		FromRecord(Record{ID: "r1", Marking: Marking{Town: "Bath"}, Valuation: "Common"}),
		FromSubmission(Submission{ID: "s1", Status: StatusPending}),
	})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "r1", got[0]["id"])
	assert.Equal(t, "Bath", got[0]["town"])
	assert.Equal(t, "Common", got[0]["valuation"])
	assert.Equal(t, "pending", got[1]["status"])
}
