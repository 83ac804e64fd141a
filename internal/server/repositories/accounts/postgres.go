package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lifelike-app/backend/internal/common"
	"github.com/lifelike-app/backend/internal/dbx"
	"github.com/lifelike-app/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT email, password_hash, verified, created_at FROM accounts
		 WHERE email = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&account.Email, &account.PasswordHash, &account.Verified, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, account *models.Account) error {
	// ON CONFLICT DO NOTHING makes the existence check and the insert a
	// single atomic statement; concurrent signups for the same email
	// cannot both succeed.
	query :=
		`INSERT INTO accounts (email, password_hash, verified)
         VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		account.Email, account.PasswordHash, account.Verified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorAlreadyExists
	}

	return nil
}

func (r *PostgresRepository) MarkVerified(ctx context.Context, email string) error {
	query :=
		`UPDATE accounts SET verified = TRUE
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
