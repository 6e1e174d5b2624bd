package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT id, username, email, password_hash, role, created_at
FROM users
WHERE id = $1
LIMIT 1`
	u, err := scanUserRow(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
SELECT id, username, email, password_hash, role, created_at
FROM users
WHERE username = $1
LIMIT 1`
	u, err := scanUserRow(repo.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	const query = `
SELECT id, username, email, password_hash, role, created_at
FROM users
WHERE role = $1
ORDER BY username ASC`
	rows, err := repo.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("ListByRole: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByRole: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *UserRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	holders, args := int64Placeholders(1, ids)
	query := fmt.Sprintf(`
SELECT id, username, email, password_hash, role, created_at
FROM users
WHERE id IN (%s)
ORDER BY id ASC`, holders)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByIDs: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (username, email, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on the username
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrDuplicateUsername
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Update(ctx context.Context, user *entity.User) error {
	const query = `
UPDATE users
SET username = $1, email = $2
WHERE id = $3`
	if _, err := repo.db.ExecContext(ctx, query, user.Username, user.Email, user.ID); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *UserRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func scanUser(rows *sql.Rows) (*entity.User, error) {
	var u entity.User
	var role string
	if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.AssignGroups()
	return &u, nil
}

func scanUserRow(row *sql.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.AssignGroups()
	return &u, nil
}
