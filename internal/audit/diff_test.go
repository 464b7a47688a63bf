package audit

import (
	"testing"
	"time"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func sampleBuyer() *models.Buyer {
	return &models.Buyer{
		ID:           "4f9ad156-2b8e-4c52-a7cb-82f6c04c9a11",
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
		Tags:         []string{"urgent", "verified"},
		OwnerID:      7,
		UpdatedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func inputFrom(b *models.Buyer) *models.BuyerInput {
	return &models.BuyerInput{
		FullName:     b.FullName,
		Email:        b.Email,
		Phone:        b.Phone,
		City:         b.City,
		PropertyType: b.PropertyType,
		BHK:          b.BHK,
		Purpose:      b.Purpose,
		BudgetMin:    b.BudgetMin,
		BudgetMax:    b.BudgetMax,
		Timeline:     b.Timeline,
		Source:       b.Source,
		Status:       b.Status,
		Notes:        b.Notes,
		Tags:         b.Tags,
	}
}

func TestForUpdate_NoChangesYieldsEmptyMap(t *testing.T) {
	b := sampleBuyer()
	p := ForUpdate(b, inputFrom(b))

	if p.Action != ActionUpdate {
		t.Errorf("Action = %q, want %q", p.Action, ActionUpdate)
	}
	if len(p.Changes) != 0 {
		t.Errorf("Changes = %v, want empty map", p.Changes)
	}
}

func TestForUpdate_SingleFieldChange(t *testing.T) {
	b := sampleBuyer()
	in := inputFrom(b)
	in.Status = "Qualified"

	p := ForUpdate(b, in)
	if len(p.Changes) != 1 {
		t.Fatalf("Changes has %d keys, want 1: %v", len(p.Changes), p.Changes)
	}
	ch, ok := p.Changes["status"]
	if !ok {
		t.Fatalf("Changes missing key status: %v", p.Changes)
	}
	if ch.Old != "New" || ch.New != "Qualified" {
		t.Errorf("status change = {%v %v}, want {New Qualified}", ch.Old, ch.New)
	}
}

func TestForUpdate_OptionalFieldCleared(t *testing.T) {
	b := sampleBuyer()
	in := inputFrom(b)
	in.Email = nil
	in.BudgetMax = nil

	p := ForUpdate(b, in)
	if len(p.Changes) != 2 {
		t.Fatalf("Changes has %d keys, want 2: %v", len(p.Changes), p.Changes)
	}
	if ch := p.Changes["email"]; ch.Old != "rahul@example.com" || ch.New != nil {
		t.Errorf("email change = {%v %v}, want {rahul@example.com <nil>}", ch.Old, ch.New)
	}
	if ch := p.Changes["budgetMax"]; ch.Old != 5_000_000 || ch.New != nil {
		t.Errorf("budgetMax change = {%v %v}, want {5000000 <nil>}", ch.Old, ch.New)
	}
}

func TestForUpdate_TagsOrderSensitive(t *testing.T) {
	b := sampleBuyer()
	in := inputFrom(b)
	in.Tags = []string{"verified", "urgent"}

	p := ForUpdate(b, in)
	if _, ok := p.Changes["tags"]; !ok {
		t.Errorf("reordered tags not reported as a change: %v", p.Changes)
	}
}

func TestForUpdate_NilAndEmptyTagsEqual(t *testing.T) {
	b := sampleBuyer()
	b.Tags = nil
	in := inputFrom(b)
	in.Tags = []string{}

	p := ForUpdate(b, in)
	if _, ok := p.Changes["tags"]; ok {
		t.Errorf("nil vs empty tags reported as change: %v", p.Changes)
	}
}

func TestForCreate(t *testing.T) {
	in := inputFrom(sampleBuyer())
	p := ForCreate(in)

	if p.Action != ActionCreate {
		t.Errorf("Action = %q, want %q", p.Action, ActionCreate)
	}
	if p.New != in {
		t.Errorf("New should carry the full candidate snapshot")
	}
	if p.Changes != nil || p.Old != nil {
		t.Errorf("create payload should not carry Changes or Old")
	}
}

func TestForDelete(t *testing.T) {
	b := sampleBuyer()
	p := ForDelete(b)

	if p.Action != ActionDelete {
		t.Errorf("Action = %q, want %q", p.Action, ActionDelete)
	}
	if p.Old != b {
		t.Errorf("Old should carry the final record state")
	}
}
