package repositories

import (
	"database/sql"
	"log"
	"time"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	const query = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(query, user.Name, user.Email, user.PasswordHash).Scan(&user.ID)
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RefreshToken, &u.RefreshExpiresAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userColumns = `id, name, email, password_hash, refresh_token, refresh_expires_at`

func (r *userRepository) GetByID(id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const query = `UPDATE users SET refresh_token=$1, refresh_expires_at=$2 WHERE id=$3`
	_, err := r.db.Exec(query, token, expiresAt, userID)
	return err
}

// RotateRefresh atomically swaps a still-valid refresh token for a new
// one and returns the owning user. Returns nil if the old token is
// unknown or expired, so a stolen stale token cannot be replayed.
func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const query = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2
		WHERE refresh_token=$3 AND refresh_expires_at > NOW()
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(query, newToken, newExpiresAt, oldToken))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) ClearRefresh(userID int) error {
	_, err := r.db.Exec(`UPDATE users SET refresh_token=NULL, refresh_expires_at=NULL WHERE id=$1`, userID)
	return err
}
