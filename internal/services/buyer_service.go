package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/audit"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/repositories"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/validation"
)

// BuyerService owns every buyer mutation. Each accepted mutation is
// paired with exactly one history entry inside one repository
// transaction, stamped with a single timestamp value.
type BuyerService struct {
	repo     *repositories.BuyerRepository
	history  *repositories.HistoryRepository
	telegram *TelegramService
}

func NewBuyerService(repo *repositories.BuyerRepository, history *repositories.HistoryRepository, telegram *TelegramService) *BuyerService {
	return &BuyerService{repo: repo, history: history, telegram: telegram}
}

// normalizeInput trims whitespace and collapses empty optionals to nil so
// "" and absent mean the same thing everywhere downstream (storage,
// diffing, export).
func normalizeInput(in *models.BuyerInput) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	trimPtr := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		if v == "" {
			return nil
		}
		return &v
	}
	in.Email = trimPtr(in.Email)
	in.BHK = trimPtr(in.BHK)
	in.Notes = trimPtr(in.Notes)

	var tags []string
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	in.Tags = tags
}

// txTimestamp mints the single timestamp threaded through a mutation and
// its history entry. Truncated to microseconds, the resolution TIMESTAMPTZ
// stores, so the updatedAt a client reads back compares equal to the
// stored value and a fresh echo never trips the staleness gate.
func txTimestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func historyEntry(buyerID string, actorID int, at time.Time, payload audit.Payload) (*models.HistoryEntry, error) {
	diff, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &models.HistoryEntry{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		ChangedBy: actorID,
		ChangedAt: at,
		Diff:      diff,
	}, nil
}

func buyerFromInput(id string, in *models.BuyerInput, ownerID int, at time.Time) *models.Buyer {
	return &models.Buyer{
		ID:           id,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		City:         in.City,
		PropertyType: in.PropertyType,
		BHK:          in.BHK,
		Purpose:      in.Purpose,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		Timeline:     in.Timeline,
		Source:       in.Source,
		Status:       in.Status,
		Notes:        in.Notes,
		Tags:         in.Tags,
		OwnerID:      ownerID,
		UpdatedAt:    at,
	}
}

// Create validates the input and inserts the buyer with its create-type
// history entry. The caller becomes the owner.
func (s *BuyerService) Create(in *models.BuyerInput, actorID int) (*models.Buyer, error) {
	normalizeInput(in)
	if in.Status == "" {
		in.Status = models.DefaultStatus
	}
	if issues := validation.ValidateBuyer(in); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	now := txTimestamp()
	buyer := buyerFromInput(uuid.NewString(), in, actorID, now)

	entry, err := historyEntry(buyer.ID, actorID, now, audit.ForCreate(in))
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateWithHistory(buyer, entry); err != nil {
		return nil, err
	}

	go s.telegram.NotifyLeadCreated(buyer)
	return buyer, nil
}

// Update applies a full-record update guarded by ownership and the
// optimistic-concurrency timestamp echo. The check order is fixed:
// existence, ownership, staleness, then validation, so a stale client
// learns about the conflict before being asked to fix field errors.
func (s *BuyerService) Update(id string, in *models.BuyerInput, actorID int, clientUpdatedAt time.Time) (*models.Buyer, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if !existing.UpdatedAt.Equal(clientUpdatedAt) {
		return nil, &ConflictError{ClientUpdatedAt: clientUpdatedAt, ServerUpdatedAt: existing.UpdatedAt}
	}

	normalizeInput(in)
	if in.Status == "" {
		in.Status = existing.Status
	}
	if issues := validation.ValidateBuyer(in); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	// Diff against the pre-update state; an empty change-set still gets a
	// history entry so the trail records the attempt.
	payload := audit.ForUpdate(existing, in)

	now := txTimestamp()
	updated := buyerFromInput(existing.ID, in, existing.OwnerID, now)

	entry, err := historyEntry(existing.ID, actorID, now, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateWithHistory(updated, entry); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the buyer after the ownership check. No concurrency
// token is required; the tombstone history entry keeps the removal
// visible in the audit trail.
func (s *BuyerService) Delete(id string, actorID int) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.OwnerID != actorID {
		return ErrForbidden
	}

	entry, err := historyEntry(id, actorID, txTimestamp(), audit.ForDelete(existing))
	if err != nil {
		return err
	}
	return s.repo.DeleteWithHistory(id, entry)
}

// Get returns the buyer with its most recent history entries.
func (s *BuyerService) Get(id string, historyLimit int) (*models.Buyer, []models.HistoryEntry, error) {
	buyer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if buyer == nil {
		return nil, nil, ErrNotFound
	}
	entries, err := s.history.ListByBuyer(id, historyLimit)
	if err != nil {
		return nil, nil, err
	}
	return buyer, entries, nil
}

// History returns the buyer's full audit trail, newest first. The trail
// outlives the record, so no existence check.
func (s *BuyerService) History(id string) ([]models.HistoryEntry, error) {
	return s.history.ListByBuyer(id, 0)
}

func (s *BuyerService) List(q models.BuyerListQuery) ([]models.Buyer, int, error) {
	return s.repo.Filter(q)
}

func (s *BuyerService) ListAll(q models.BuyerListQuery) ([]models.Buyer, error) {
	return s.repo.FilterAll(q)
}
