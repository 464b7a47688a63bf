package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

type BuyerRepository struct {
	db *sql.DB
}

func NewBuyerRepository(db *sql.DB) *BuyerRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &BuyerRepository{db: db}
}

const buyerColumns = `id, full_name, email, phone, city, property_type, bhk, purpose,
		budget_min, budget_max, timeline, source, status, notes, tags, owner_id, updated_at`

// sortColumns is the allow-list mapping requested sort keys to real
// columns. Anything outside it falls back to updated_at; raw keys are
// never interpolated into SQL.
var sortColumns = map[string]string{
	"updatedAt":    "updated_at",
	"fullName":     "full_name",
	"city":         "city",
	"status":       "status",
	"propertyType": "property_type",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuyer(row rowScanner) (*models.Buyer, error) {
	var (
		b         models.Buyer
		email     sql.NullString
		bhk       sql.NullString
		notes     sql.NullString
		budgetMin sql.NullInt64
		budgetMax sql.NullInt64
	)
	err := row.Scan(&b.ID, &b.FullName, &email, &b.Phone, &b.City, &b.PropertyType,
		&bhk, &b.Purpose, &budgetMin, &budgetMax, &b.Timeline, &b.Source,
		&b.Status, &notes, pq.Array(&b.Tags), &b.OwnerID, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		b.Email = &email.String
	}
	if bhk.Valid {
		b.BHK = &bhk.String
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	if budgetMin.Valid {
		v := int(budgetMin.Int64)
		b.BudgetMin = &v
	}
	if budgetMax.Valid {
		v := int(budgetMax.Int64)
		b.BudgetMax = &v
	}
	return &b, nil
}

func (r *BuyerRepository) GetByID(id string) (*models.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE id=$1`
	b, err := scanBuyer(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

const insertBuyerQuery = `
		INSERT INTO buyers (id, full_name, email, phone, city, property_type, bhk, purpose,
			budget_min, budget_max, timeline, source, status, notes, tags, owner_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

const insertHistoryQuery = `
		INSERT INTO buyer_history (id, buyer_id, changed_by, changed_at, diff)
		VALUES ($1, $2, $3, $4, $5)
	`

func execInsertBuyer(tx *sql.Tx, b *models.Buyer) error {
	_, err := tx.Exec(insertBuyerQuery,
		b.ID, b.FullName, b.Email, b.Phone, b.City, b.PropertyType, b.BHK, b.Purpose,
		b.BudgetMin, b.BudgetMax, b.Timeline, b.Source, b.Status, b.Notes,
		pq.Array(b.Tags), b.OwnerID, b.UpdatedAt)
	return err
}

func execInsertHistory(tx *sql.Tx, h *models.HistoryEntry) error {
	_, err := tx.Exec(insertHistoryQuery, h.ID, h.BuyerID, h.ChangedBy, h.ChangedAt, []byte(h.Diff))
	return err
}

// CreateWithHistory inserts the buyer and its create-type history entry in
// one transaction: either both rows land or neither does.
func (r *BuyerRepository) CreateWithHistory(b *models.Buyer, h *models.HistoryEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execInsertBuyer(tx, b); err != nil {
		return err
	}
	if err := execInsertHistory(tx, h); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateWithHistory rewrites the buyer row and appends the update-type
// history entry atomically. The caller has already performed the
// ownership and concurrency checks and threads one timestamp through
// both writes.
func (r *BuyerRepository) UpdateWithHistory(b *models.Buyer, h *models.HistoryEntry) error {
	const query = `
		UPDATE buyers
		SET full_name=$1, email=$2, phone=$3, city=$4, property_type=$5, bhk=$6,
			purpose=$7, budget_min=$8, budget_max=$9, timeline=$10, source=$11,
			status=$12, notes=$13, tags=$14, updated_at=$15
		WHERE id=$16
	`
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(query,
		b.FullName, b.Email, b.Phone, b.City, b.PropertyType, b.BHK,
		b.Purpose, b.BudgetMin, b.BudgetMax, b.Timeline, b.Source,
		b.Status, b.Notes, pq.Array(b.Tags), b.UpdatedAt, b.ID); err != nil {
		return err
	}
	if err := execInsertHistory(tx, h); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteWithHistory removes the buyer row and appends the tombstone entry
// in the same transaction.
func (r *BuyerRepository) DeleteWithHistory(id string, h *models.HistoryEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM buyers WHERE id=$1`, id); err != nil {
		return err
	}
	if err := execInsertHistory(tx, h); err != nil {
		return err
	}
	return tx.Commit()
}

// BulkCreateWithHistory inserts every buyer with its paired history entry
// inside a single transaction. Any failure rolls the whole batch back.
func (r *BuyerRepository) BulkCreateWithHistory(buyers []*models.Buyer, entries []*models.HistoryEntry) error {
	if len(buyers) != len(entries) {
		return fmt.Errorf("buyers and history entries out of step: %d vs %d", len(buyers), len(entries))
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range buyers {
		if err := execInsertBuyer(tx, buyers[i]); err != nil {
			return err
		}
		if err := execInsertHistory(tx, entries[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// escapeLike neutralises LIKE wildcards in a user-supplied search term so
// the term is matched literally inside the composed pattern.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}

// buildFilter renders the WHERE clause and ORDER BY for a list query.
// Filter values go through positional args; only allow-listed column
// names reach the SQL text.
func buildFilter(q models.BuyerListQuery) (where string, orderBy string, args []any) {
	where = "WHERE 1=1"
	i := 1

	add := func(column, value string) {
		if value == "" {
			return
		}
		where += fmt.Sprintf(" AND %s = $%d", column, i)
		args = append(args, value)
		i++
	}
	add("city", q.City)
	add("property_type", q.PropertyType)
	add("status", q.Status)
	add("timeline", q.Timeline)

	if q.Search != "" {
		term := "%" + escapeLike(q.Search) + "%"
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)", i, i, i)
		args = append(args, term)
		i++
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "updated_at"
	}
	order := q.Order
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	orderBy = fmt.Sprintf("ORDER BY %s %s", column, order)
	return where, orderBy, args
}

// Filter returns one page of matching buyers plus the total match count
// before pagination.
func (r *BuyerRepository) Filter(q models.BuyerListQuery) ([]models.Buyer, int, error) {
	where, orderBy, args := buildFilter(q)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM buyers "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.PerPage
	query := fmt.Sprintf("SELECT %s FROM buyers %s %s LIMIT $%d OFFSET $%d",
		buyerColumns, where, orderBy, len(args)+1, len(args)+2)
	rows, err := r.db.Query(query, append(args, q.PerPage, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Buyer{}
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

// FilterAll returns the complete filtered set with no pagination, for the
// export paths.
func (r *BuyerRepository) FilterAll(q models.BuyerListQuery) ([]models.Buyer, error) {
	where, orderBy, args := buildFilter(q)

	query := fmt.Sprintf("SELECT %s FROM buyers %s %s", buyerColumns, where, orderBy)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Buyer{}
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}
