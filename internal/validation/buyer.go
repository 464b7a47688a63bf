package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

// Issue is a single field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

var (
	phoneRe = regexp.MustCompile(`^\d{10,15}$`)
	// good enough for intake forms; real deliverability is checked by sending
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func inSet(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ValidateBuyer checks a candidate buyer input against the intake rules.
// It returns the full list of issues rather than stopping at the first,
// so callers can surface every problem per-field.
func ValidateBuyer(in *models.BuyerInput) []Issue {
	var issues []Issue

	// character counts, not bytes: names here are often Devanagari or
	// Gurmukhi and a rune is up to 3 bytes
	name := strings.TrimSpace(in.FullName)
	if n := utf8.RuneCountInString(name); n < 2 || n > 80 {
		issues = append(issues, Issue{"fullName", "must be between 2 and 80 characters"})
	}

	if !phoneRe.MatchString(in.Phone) {
		issues = append(issues, Issue{"phone", "must be 10-15 numeric digits"})
	}

	if in.Email != nil && *in.Email != "" && !emailRe.MatchString(*in.Email) {
		issues = append(issues, Issue{"email", "invalid email"})
	}

	if !inSet(in.City, models.Cities) {
		issues = append(issues, Issue{"city", "must be one of: "+strings.Join(models.Cities, ", ")})
	}
	if !inSet(in.PropertyType, models.PropertyTypes) {
		issues = append(issues, Issue{"propertyType", "must be one of: "+strings.Join(models.PropertyTypes, ", ")})
	}
	if !inSet(in.Purpose, models.Purposes) {
		issues = append(issues, Issue{"purpose", "must be one of: "+strings.Join(models.Purposes, ", ")})
	}
	if !inSet(in.Timeline, models.Timelines) {
		issues = append(issues, Issue{"timeline", "must be one of: "+strings.Join(models.Timelines, ", ")})
	}
	if !inSet(in.Source, models.Sources) {
		issues = append(issues, Issue{"source", "must be one of: "+strings.Join(models.Sources, ", ")})
	}
	if in.Status != "" && !inSet(in.Status, models.Statuses) {
		issues = append(issues, Issue{"status", "must be one of: "+strings.Join(models.Statuses, ", ")})
	}

	// BHK is mandatory for Apartment/Villa and must come from the closed set
	needsBHK := in.PropertyType == "Apartment" || in.PropertyType == "Villa"
	hasBHK := in.BHK != nil && strings.TrimSpace(*in.BHK) != ""
	if needsBHK && !hasBHK {
		issues = append(issues, Issue{"bhk", "BHK is required for Apartment or Villa"})
	}
	if hasBHK && !inSet(strings.TrimSpace(*in.BHK), models.BHKs) {
		issues = append(issues, Issue{"bhk", "must be one of: "+strings.Join(models.BHKs, ", ")})
	}

	if in.BudgetMin != nil && *in.BudgetMin <= 0 {
		issues = append(issues, Issue{"budgetMin", "must be a positive integer"})
	}
	if in.BudgetMax != nil && *in.BudgetMax <= 0 {
		issues = append(issues, Issue{"budgetMax", "must be a positive integer"})
	}
	if in.BudgetMin != nil && in.BudgetMax != nil && *in.BudgetMax < *in.BudgetMin {
		issues = append(issues, Issue{"budgetMax", "budgetMax must be greater than or equal to budgetMin"})
	}

	if in.Notes != nil && utf8.RuneCountInString(*in.Notes) > 1000 {
		issues = append(issues, Issue{"notes", "must be at most 1000 characters"})
	}

	return issues
}
