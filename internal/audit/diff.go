package audit

import (
	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// FieldChange holds the before/after values of one field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Payload is the tagged history body stored in buyer_history.diff.
// Exactly one of New/Old/Changes is set depending on Action.
type Payload struct {
	Action  Action                 `json:"action"`
	New     *models.BuyerInput     `json:"new,omitempty"`
	Old     *models.Buyer          `json:"old,omitempty"`
	Changes map[string]FieldChange `json:"changes,omitempty"`
}

// ForCreate wraps the full validated input as a creation snapshot.
func ForCreate(in *models.BuyerInput) Payload {
	return Payload{Action: ActionCreate, New: in}
}

// ForDelete keeps a tombstone of the record's final state. Without it the
// trail could show a lead's lifetime but not that it was removed.
func ForDelete(existing *models.Buyer) Payload {
	return Payload{Action: ActionDelete, Old: existing}
}

// ForUpdate compares every mutable field of the stored record against the
// candidate and records only the ones that differ. Scalars compare by
// value, optional fields by dereferenced value with nil meaning unset,
// tags by order-sensitive element equality. An update that changes
// nothing yields an empty map; the store still writes the entry so the
// trail records the attempt.
func ForUpdate(existing *models.Buyer, in *models.BuyerInput) Payload {
	changes := map[string]FieldChange{}

	diffStr(changes, "fullName", existing.FullName, in.FullName)
	diffStrPtr(changes, "email", existing.Email, in.Email)
	diffStr(changes, "phone", existing.Phone, in.Phone)
	diffStr(changes, "city", existing.City, in.City)
	diffStr(changes, "propertyType", existing.PropertyType, in.PropertyType)
	diffStrPtr(changes, "bhk", existing.BHK, in.BHK)
	diffStr(changes, "purpose", existing.Purpose, in.Purpose)
	diffIntPtr(changes, "budgetMin", existing.BudgetMin, in.BudgetMin)
	diffIntPtr(changes, "budgetMax", existing.BudgetMax, in.BudgetMax)
	diffStr(changes, "timeline", existing.Timeline, in.Timeline)
	diffStr(changes, "source", existing.Source, in.Source)
	diffStr(changes, "status", existing.Status, in.Status)
	diffStrPtr(changes, "notes", existing.Notes, in.Notes)

	if !tagsEqual(existing.Tags, in.Tags) {
		changes["tags"] = FieldChange{Old: existing.Tags, New: in.Tags}
	}

	return Payload{Action: ActionUpdate, Changes: changes}
}

func diffStr(changes map[string]FieldChange, field, old, new string) {
	if old != new {
		changes[field] = FieldChange{Old: old, New: new}
	}
}

func diffStrPtr(changes map[string]FieldChange, field string, old, new *string) {
	if strPtrEqual(old, new) {
		return
	}
	changes[field] = FieldChange{Old: deref(old), New: deref(new)}
}

func diffIntPtr(changes map[string]FieldChange, field string, old, new *int) {
	if intPtrEqual(old, new) {
		return
	}
	changes[field] = FieldChange{Old: derefInt(old), New: derefInt(new)}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func deref(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func derefInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
