package validation

import (
	"strings"
	"testing"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func validInput() *models.BuyerInput {
	return &models.BuyerInput{
		FullName:     "Rahul Sharma",
		Phone:        "9876543210",
		City:         "Mohali",
		PropertyType: "Plot",
		Purpose:      "Buy",
		Timeline:     "0-3m",
		Source:       "Website",
	}
}

func issueFields(issues []Issue) []string {
	fields := make([]string, 0, len(issues))
	for _, i := range issues {
		fields = append(fields, i.Field)
	}
	return fields
}

func TestValidateBuyer_ValidInput(t *testing.T) {
	if issues := ValidateBuyer(validInput()); len(issues) != 0 {
		t.Errorf("valid input produced issues: %v", issues)
	}
}

func TestValidateBuyer_BudgetOrder(t *testing.T) {
	in := validInput()
	in.BudgetMin = intp(5_000_000)
	in.BudgetMax = intp(3_000_000)

	issues := ValidateBuyer(in)
	if len(issues) != 1 || issues[0].Field != "budgetMax" {
		t.Errorf("issues = %v, want single budgetMax issue", issues)
	}
}

func TestValidateBuyer_BHKRequiredForApartment(t *testing.T) {
	in := validInput()
	in.PropertyType = "Apartment"

	issues := ValidateBuyer(in)
	if len(issues) != 1 || issues[0].Field != "bhk" {
		t.Errorf("issues = %v, want single bhk issue", issues)
	}

	in.BHK = strp("2")
	if issues := ValidateBuyer(in); len(issues) != 0 {
		t.Errorf("apartment with bhk produced issues: %v", issues)
	}
}

func TestValidateBuyer_BHKNotRequiredForPlot(t *testing.T) {
	in := validInput()
	in.PropertyType = "Plot"
	if issues := ValidateBuyer(in); len(issues) != 0 {
		t.Errorf("plot without bhk produced issues: %v", issues)
	}
}

func TestValidateBuyer_CollectsAllIssues(t *testing.T) {
	in := &models.BuyerInput{
		FullName:     "X",
		Phone:        "12ab",
		City:         "Atlantis",
		PropertyType: "Castle",
		Purpose:      "Hold",
		Timeline:     "someday",
		Source:       "Dream",
	}

	issues := ValidateBuyer(in)
	want := []string{"fullName", "phone", "city", "propertyType", "purpose", "timeline", "source"}
	got := issueFields(issues)
	if len(got) != len(want) {
		t.Fatalf("issue fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("issue[%d].Field = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateBuyer_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.BuyerInput)
		wantField string
	}{
		{"short phone", func(in *models.BuyerInput) { in.Phone = "12345" }, "phone"},
		{"alpha phone", func(in *models.BuyerInput) { in.Phone = "98765abc10" }, "phone"},
		{"bad email", func(in *models.BuyerInput) { in.Email = strp("not-an-email") }, "email"},
		{"unknown status", func(in *models.BuyerInput) { in.Status = "Archived" }, "status"},
		{"unknown bhk", func(in *models.BuyerInput) { in.BHK = strp("5") }, "bhk"},
		{"zero budget", func(in *models.BuyerInput) { in.BudgetMin = intp(0) }, "budgetMin"},
		{"long notes", func(in *models.BuyerInput) { in.Notes = strp(strings.Repeat("a", 1001)) }, "notes"},
		{"long name", func(in *models.BuyerInput) { in.FullName = strings.Repeat("n", 81) }, "fullName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			issues := ValidateBuyer(in)
			if len(issues) != 1 || issues[0].Field != tt.wantField {
				t.Errorf("issues = %v, want single %s issue", issues, tt.wantField)
			}
		})
	}
}

func TestValidateBuyer_MultibyteLengthsCountRunes(t *testing.T) {
	// 11 runes but 31 bytes: well within the 80-char cap
	in := validInput()
	in.FullName = "राहुल शर्मा"
	if issues := ValidateBuyer(in); len(issues) != 0 {
		t.Errorf("Devanagari name produced issues: %v", issues)
	}

	// 81 two-byte runes must still fail the max
	in = validInput()
	in.FullName = strings.Repeat("ß", 81)
	issues := ValidateBuyer(in)
	if len(issues) != 1 || issues[0].Field != "fullName" {
		t.Errorf("81-rune name: issues = %v, want single fullName issue", issues)
	}

	// a single multibyte rune is still one character, below the min
	in = validInput()
	in.FullName = "ß"
	issues = ValidateBuyer(in)
	if len(issues) != 1 || issues[0].Field != "fullName" {
		t.Errorf("1-rune name: issues = %v, want single fullName issue", issues)
	}

	// 1000 multibyte characters of notes are within the limit
	in = validInput()
	in.Notes = strp(strings.Repeat("म", 1000))
	if issues := ValidateBuyer(in); len(issues) != 0 {
		t.Errorf("1000-rune notes produced issues: %v", issues)
	}
}

func TestValidateBuyer_EmptyEmailAllowed(t *testing.T) {
	in := validInput()
	in.Email = strp("")
	if issues := ValidateBuyer(in); len(issues) != 0 {
		t.Errorf("empty email produced issues: %v", issues)
	}
}
