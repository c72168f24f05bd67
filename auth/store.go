package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/bulletin-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// AccountStore persists accounts keyed by their unique user identifier.
// Uniqueness of the identifier is enforced by the store itself: two
// concurrent Create calls with the same identifier must not both succeed.
type AccountStore interface {
	// ExistsByUserID reports whether an account with the given id exists.
	ExistsByUserID(ctx context.Context, userID string) (bool, error)

	// FindByUserID returns the account with the given id, or a NotFound
	// error when no such account exists.
	FindByUserID(ctx context.Context, userID string) (*Account, error)

	// Create inserts a new account. A duplicate user identifier yields a
	// Conflict error, including when the duplicate arrives concurrently.
	Create(ctx context.Context, account *Account) (*Account, error)

	// Update replaces the mutable fields (name, profile image) of an
	// existing account. The user identifier never changes.
	Update(ctx context.Context, account *Account) (*Account, error)
}

// pgAccountStore is the PostgreSQL-backed AccountStore. The accounts table
// carries a unique constraint on user_id, which is the source of truth for
// the registration race.
type pgAccountStore struct {
	db *pgxpool.Pool
}

// NewAccountStore creates an AccountStore backed by the given pool.
func NewAccountStore(db *pgxpool.Pool) AccountStore {
	return &pgAccountStore{db: db}
}

func (s *pgAccountStore) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1)`
	if err := s.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, apperror.NewDatabaseError("failed to check user id", err)
	}
	return exists, nil
}

func (s *pgAccountStore) FindByUserID(ctx context.Context, userID string) (*Account, error) {
	var account Account
	query := `SELECT user_id, password, name, profile_image, created_at FROM accounts WHERE user_id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.HashedPassword,
		&account.Name,
		&account.ProfileImage,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("account '%s' not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to find account", err)
	}
	return &account, nil
}

func (s *pgAccountStore) Create(ctx context.Context, account *Account) (*Account, error) {
	query := `INSERT INTO accounts (user_id, password, name, profile_image)
              VALUES ($1, $2, $3, $4)
              RETURNING created_at`
	err := s.db.QueryRow(ctx, query,
		account.UserID,
		account.HashedPassword,
		account.Name,
		account.ProfileImage,
	).Scan(&account.CreatedAt)
	if err != nil {
		return nil, mapCreateError(err)
	}
	return account, nil
}

// mapCreateError converts an insert failure into the store's typed errors.
// accounts has a single unique constraint, the user_id primary key, so any
// unique violation is a duplicate identifier regardless of the name
// Postgres assigned the constraint.
func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperror.NewConflictError("user id already exists", nil)
	}
	return apperror.NewDatabaseError("failed to create account", err)
}

func (s *pgAccountStore) Update(ctx context.Context, account *Account) (*Account, error) {
	query := `UPDATE accounts
              SET name = $2, profile_image = $3
              WHERE user_id = $1
              RETURNING created_at`
	err := s.db.QueryRow(ctx, query,
		account.UserID,
		account.Name,
		account.ProfileImage,
	).Scan(&account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("account '%s' not found", account.UserID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update account", err)
	}
	return account, nil
}
