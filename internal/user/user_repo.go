package user

import (
	"context"
	"database/sql"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
	"github.com/pot-code/skillspark/internal/infrastructure/uuid"
)

// Repository account storage over a SQL connection
type Repository struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.UserRepository = &Repository{}

// NewUserRepository ...
func NewUserRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *Repository {
	return &Repository{Conn, UUIDGenerator}
}

// FindByCredential query user by username, or email when post.Email is set. Returns nil if not found
func (repo *Repository) FindByCredential(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	conn := repo.Conn
	email := post.Email
	if email == "" {
		email = post.Username
	}
	row, err := conn.QueryContext(ctx, `
SELECT id, username, password, email, login_retry, last_login
FROM "user" WHERE username = $1 OR email = $2`, post.Username, email)
	if err != nil {
		return nil, err
	}
	defer row.Close()

	if row.Next() {
		user := new(domain.UserModel)
		if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.LoginRetry, &user.LastLogin); err != nil {
			return nil, err
		}
		return user, nil
	}
	return nil, row.Err()
}

// SaveUser insert post with a generated id
func (repo *Repository) SaveUser(ctx context.Context, post *domain.UserModel) error {
	conn := repo.Conn
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	post.ID = id

	_, err = conn.ExecContext(ctx, `
INSERT INTO "user"(id, username, password, email, last_login)
VALUES($1, $2, $3, $4, $5)`, post.ID, post.Username, post.Password, post.Email, post.LastLogin)
	if driver.IsMySQLDuplicateEntry(err) || driver.IsPGUniqueViolation(err) {
		return domain.ErrDuplicatedUser
	}
	return err
}

// UpdateUser persist email and login bookkeeping
func (repo *Repository) UpdateUser(ctx context.Context, post *domain.UserModel) error {
	conn := repo.Conn
	_, err := conn.ExecContext(ctx, `
UPDATE "user"
SET email = $1,
    login_retry = $2,
    last_login = $3
WHERE id = $4`, post.Email, post.LoginRetry, post.LastLogin, post.ID)
	return err
}

// BeginTx repeatable read transaction
func (repo *Repository) BeginTx(ctx context.Context) (driver.ITransactionalDB, error) {
	return repo.Conn.BeginTx(ctx, &driver.TxOptions{
		Isolation: sql.LevelRepeatableRead,
	})
}
