package repositories

import (
	"database/sql"
	"log"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

// HistoryRepository reads the append-only audit trail. Writes happen only
// through BuyerRepository transactions so an entry can never exist
// without its paired mutation.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &HistoryRepository{db: db}
}

// ListByBuyer returns history entries for a buyer, newest first.
// limit <= 0 returns the full trail.
func (r *HistoryRepository) ListByBuyer(buyerID string, limit int) ([]models.HistoryEntry, error) {
	query := `
		SELECT id, buyer_id, changed_by, changed_at, diff
		FROM buyer_history
		WHERE buyer_id = $1
		ORDER BY changed_at DESC
	`
	args := []any{buyerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HistoryEntry{}
	for rows.Next() {
		var h models.HistoryEntry
		var diff []byte
		if err := rows.Scan(&h.ID, &h.BuyerID, &h.ChangedBy, &h.ChangedAt, &diff); err != nil {
			return nil, err
		}
		h.Diff = diff
		out = append(out, h)
	}
	return out, rows.Err()
}
