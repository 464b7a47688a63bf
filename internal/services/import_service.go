package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/audit"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/repositories"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/validation"
)

// RowError reports one validation issue of one input row. Row numbers are
// offset by the CSV header row so they match what the user sees in a
// spreadsheet.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult partitions the input exactly: every row is either counted
// in InsertedCount or present in Errors.
type ImportResult struct {
	InsertedCount int        `json:"insertedCount"`
	Errors        []RowError `json:"errors"`
}

type ImportService struct {
	repo     *repositories.BuyerRepository
	telegram *TelegramService
	maxRows  int
}

func NewImportService(repo *repositories.BuyerRepository, telegram *TelegramService, maxRows int) *ImportService {
	if maxRows <= 0 {
		maxRows = 200
	}
	return &ImportService{repo: repo, telegram: telegram, maxRows: maxRows}
}

// coerceRow turns a loosely-typed CSV row into a candidate input: numeric
// strings become ints, the comma-separated tag cell becomes a slice,
// empty cells become unset. Unparseable numbers are reported as issues
// rather than silently dropped.
func coerceRow(row map[string]string) (*models.BuyerInput, []validation.Issue) {
	var issues []validation.Issue

	get := func(key string) string { return strings.TrimSpace(row[key]) }
	optional := func(key string) *string {
		if v := get(key); v != "" {
			return &v
		}
		return nil
	}
	budget := func(key string) *int {
		v := get(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			issues = append(issues, validation.Issue{Field: key, Message: fmt.Sprintf("%q is not an integer", v)})
			return nil
		}
		return &n
	}

	in := &models.BuyerInput{
		FullName:     get("fullName"),
		Email:        optional("email"),
		Phone:        get("phone"),
		City:         get("city"),
		PropertyType: get("propertyType"),
		BHK:          optional("bhk"),
		Purpose:      get("purpose"),
		BudgetMin:    budget("budgetMin"),
		BudgetMax:    budget("budgetMax"),
		Timeline:     get("timeline"),
		Source:       get("source"),
		Status:       get("status"),
		Notes:        optional("notes"),
	}
	if tags := get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				in.Tags = append(in.Tags, t)
			}
		}
	}
	return in, issues
}

// partitionRows validates every row independently and never aborts on a
// failing one. Valid inputs come back normalized and defaulted; each
// issue of a failing row becomes its own RowError.
func partitionRows(rows []map[string]string) ([]*models.BuyerInput, []RowError) {
	var valid []*models.BuyerInput
	var errs []RowError

	for i, row := range rows {
		in, issues := coerceRow(row)
		normalizeInput(in)
		if in.Status == "" {
			in.Status = models.DefaultStatus
		}
		issues = append(issues, validation.ValidateBuyer(in)...)

		if len(issues) > 0 {
			for _, iss := range issues {
				// +2: 1-indexed data rows shifted past the header row
				errs = append(errs, RowError{Row: i + 2, Message: iss.String()})
			}
			continue
		}
		valid = append(valid, in)
	}
	return valid, errs
}

// Import runs the batch pipeline: cap check, per-row coercion and
// validation, then one transaction inserting every valid row with its
// paired create-type history entry. Validation failures never reach the
// transaction; a store failure rolls back the whole batch.
func (s *ImportService) Import(rows []map[string]string, actorID int) (*ImportResult, error) {
	if len(rows) > s.maxRows {
		return nil, &BatchTooLargeError{Rows: len(rows), MaxRows: s.maxRows}
	}

	valid, errs := partitionRows(rows)
	result := &ImportResult{Errors: errs}
	if errs == nil {
		result.Errors = []RowError{}
	}
	if len(valid) == 0 {
		return result, nil
	}

	// One timestamp for the whole batch so records and history agree.
	now := txTimestamp()
	buyers := make([]*models.Buyer, 0, len(valid))
	entries := make([]*models.HistoryEntry, 0, len(valid))
	for _, in := range valid {
		b := buyerFromInput(uuid.NewString(), in, actorID, now)
		entry, err := historyEntry(b.ID, actorID, now, audit.ForCreate(in))
		if err != nil {
			return nil, err
		}
		buyers = append(buyers, b)
		entries = append(entries, entry)
	}

	if err := s.repo.BulkCreateWithHistory(buyers, entries); err != nil {
		return nil, err
	}

	result.InsertedCount = len(valid)
	go s.telegram.NotifyImportFinished(result.InsertedCount, len(rows)-result.InsertedCount)
	return result, nil
}
