package services

import (
	"strings"
	"testing"
)

func validRow() map[string]string {
	return map[string]string{
		"fullName":     "Rahul Sharma",
		"email":        "rahul@example.com",
		"phone":        "9876543210",
		"city":         "Mohali",
		"propertyType": "Apartment",
		"bhk":          "2",
		"purpose":      "Buy",
		"budgetMin":    "3000000",
		"budgetMax":    "5000000",
		"timeline":     "0-3m",
		"source":       "Website",
		"notes":        "prefers top floor",
		"tags":         "urgent, verified",
	}
}

func TestCoerceRow_TypedFields(t *testing.T) {
	in, issues := coerceRow(validRow())
	if len(issues) != 0 {
		t.Fatalf("unexpected coercion issues: %v", issues)
	}
	if in.BudgetMin == nil || *in.BudgetMin != 3_000_000 {
		t.Errorf("BudgetMin = %v, want 3000000", in.BudgetMin)
	}
	if in.BudgetMax == nil || *in.BudgetMax != 5_000_000 {
		t.Errorf("BudgetMax = %v, want 5000000", in.BudgetMax)
	}
	if len(in.Tags) != 2 || in.Tags[0] != "urgent" || in.Tags[1] != "verified" {
		t.Errorf("Tags = %v, want [urgent verified]", in.Tags)
	}
	if in.Email == nil || *in.Email != "rahul@example.com" {
		t.Errorf("Email = %v, want rahul@example.com", in.Email)
	}
}

func TestCoerceRow_EmptyCellsAreUnset(t *testing.T) {
	row := validRow()
	row["email"] = ""
	row["budgetMin"] = ""
	row["budgetMax"] = " "
	row["tags"] = ""
	row["notes"] = ""

	in, issues := coerceRow(row)
	if len(issues) != 0 {
		t.Fatalf("unexpected coercion issues: %v", issues)
	}
	if in.Email != nil || in.BudgetMin != nil || in.BudgetMax != nil || in.Notes != nil {
		t.Errorf("empty cells should stay unset: email=%v min=%v max=%v notes=%v",
			in.Email, in.BudgetMin, in.BudgetMax, in.Notes)
	}
	if in.Tags != nil {
		t.Errorf("Tags = %v, want nil", in.Tags)
	}
}

func TestCoerceRow_BadNumber(t *testing.T) {
	row := validRow()
	row["budgetMin"] = "thirty lakh"

	_, issues := coerceRow(row)
	if len(issues) != 1 || issues[0].Field != "budgetMin" {
		t.Errorf("issues = %v, want single budgetMin issue", issues)
	}
}

func TestPartitionRows_MixedBatch(t *testing.T) {
	bad := validRow()
	bad["phone"] = "12ab" // fails validation
	worse := validRow()
	worse["fullName"] = "X"      // issue 1
	worse["propertyType"] = "??" // issue 2 (enum); bhk no longer required

	rows := []map[string]string{validRow(), bad, validRow(), worse}
	valid, errs := partitionRows(rows)

	if len(valid) != 2 {
		t.Errorf("valid rows = %d, want 2", len(valid))
	}

	// row numbers are 1-indexed data rows + header offset
	wantRows := []int{3, 5, 5}
	if len(errs) != len(wantRows) {
		t.Fatalf("errs = %v, want %d entries", errs, len(wantRows))
	}
	for i, want := range wantRows {
		if errs[i].Row != want {
			t.Errorf("errs[%d].Row = %d, want %d", i, errs[i].Row, want)
		}
	}
	if !strings.HasPrefix(errs[0].Message, "phone:") {
		t.Errorf("errs[0].Message = %q, want phone issue", errs[0].Message)
	}
}

func TestPartitionRows_AllInvalid(t *testing.T) {
	bad := validRow()
	bad["city"] = "Gotham"

	valid, errs := partitionRows([]map[string]string{bad, bad})
	if len(valid) != 0 {
		t.Errorf("valid rows = %d, want 0", len(valid))
	}
	if len(errs) != 2 {
		t.Errorf("errs = %v, want 2 entries", errs)
	}
}

func TestPartitionRows_StatusDefaulted(t *testing.T) {
	row := validRow()
	delete(row, "status")

	valid, errs := partitionRows([]map[string]string{row})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(valid) != 1 || valid[0].Status != "New" {
		t.Errorf("status = %q, want New", valid[0].Status)
	}
}
