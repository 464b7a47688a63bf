package models

import (
	"encoding/json"
	"time"
)

// Closed enumerations for buyer lead fields. Values are stored verbatim
// in the DB, so extending a set is a data migration, not just a code change.
var (
	Cities        = []string{"Chandigarh", "Mohali", "Zirakpur", "Panchkula", "Other"}
	PropertyTypes = []string{"Apartment", "Villa", "Plot", "Office", "Retail"}
	BHKs          = []string{"1", "2", "3", "4", "Studio"}
	Purposes      = []string{"Buy", "Rent"}
	Timelines     = []string{"0-3m", "3-6m", ">6m", "Exploring"}
	Sources       = []string{"Website", "Referral", "Walk-in", "Call", "Other"}
	Statuses      = []string{"New", "Qualified", "Contacted", "Visited", "Negotiation", "Converted", "Dropped"}
)

const DefaultStatus = "New"

type Buyer struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        *string   `json:"email,omitempty"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	PropertyType string    `json:"propertyType"`
	BHK          *string   `json:"bhk,omitempty"`
	Purpose      string    `json:"purpose"`
	BudgetMin    *int      `json:"budgetMin,omitempty"`
	BudgetMax    *int      `json:"budgetMax,omitempty"`
	Timeline     string    `json:"timeline"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	OwnerID      int       `json:"ownerId"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BuyerInput is the validated shape accepted by create, update and import.
type BuyerInput struct {
	FullName     string   `json:"fullName"`
	Email        *string  `json:"email,omitempty"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	PropertyType string   `json:"propertyType"`
	BHK          *string  `json:"bhk,omitempty"`
	Purpose      string   `json:"purpose"`
	BudgetMin    *int     `json:"budgetMin,omitempty"`
	BudgetMax    *int     `json:"budgetMax,omitempty"`
	Timeline     string   `json:"timeline"`
	Source       string   `json:"source"`
	Status       string   `json:"status,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// HistoryEntry is an append-only audit row. Diff is the raw JSON payload
// produced by the audit package; it is never rewritten after insert.
type HistoryEntry struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyerId"`
	ChangedBy int             `json:"changedBy"`
	ChangedAt time.Time       `json:"changedAt"`
	Diff      json.RawMessage `json:"diff"`
}

// BuyerListQuery carries the filter/sort/pagination parameters for
// listing and export. Zero values mean "not filtered".
type BuyerListQuery struct {
	Search       string
	City         string
	PropertyType string
	Status       string
	Timeline     string
	SortBy       string
	Order        string
	Page         int
	PerPage      int
}
