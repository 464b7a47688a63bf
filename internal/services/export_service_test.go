package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestWriteBuyersCSV(t *testing.T) {
	buyers := []models.Buyer{
		{
			FullName:     "Rahul Sharma",
			Email:        strp("rahul@example.com"),
			Phone:        "9876543210",
			City:         "Mohali",
			PropertyType: "Apartment",
			BHK:          strp("2"),
			Purpose:      "Buy",
			BudgetMin:    intp(3_000_000),
			BudgetMax:    intp(5_000_000),
			Timeline:     "0-3m",
			Source:       "Website",
			Status:       "New",
			Notes:        strp(`wants "corner" plot, asap`),
			Tags:         []string{"urgent", "verified"},
			OwnerID:      7,
			UpdatedAt:    time.Now(),
		},
		{
			FullName:     "Meena Verma",
			Phone:        "8765432109",
			City:         "Panchkula",
			PropertyType: "Plot",
			Purpose:      "Rent",
			Timeline:     "Exploring",
			Source:       "Call",
			Status:       "Contacted",
		},
	}

	var buf bytes.Buffer
	if err := WriteBuyersCSV(&buf, buyers); err != nil {
		t.Fatalf("WriteBuyersCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse of produced CSV failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}

	for i, h := range ExportHeaders {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	first := records[1]
	if first[0] != "Rahul Sharma" || first[7] != "3000000" || first[12] != "urgent,verified" {
		t.Errorf("row 1 = %v, wrong name/budget/tags encoding", first)
	}
	if first[11] != `wants "corner" plot, asap` {
		t.Errorf("quoted notes did not round-trip: %q", first[11])
	}

	second := records[2]
	if second[1] != "" || second[5] != "" || second[7] != "" || second[12] != "" {
		t.Errorf("unset optionals should be empty cells: %v", second)
	}
	if second[13] != "Contacted" {
		t.Errorf("status cell = %q, want Contacted", second[13])
	}
}

func TestWriteBuyersCSV_EmptySetStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBuyersCSV(&buf, nil); err != nil {
		t.Fatalf("WriteBuyersCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil || len(records) != 1 {
		t.Fatalf("records = %v (err %v), want header only", records, err)
	}
}
