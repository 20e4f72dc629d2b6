package user

import (
	"context"
	"errors"
	"fmt"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/user"
	"registrar/internal/db"
	"strings"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const (
	EMAIL_CONSTRAINT_NAME    = "user_email_idx"
	USERNAME_CONSTRAINT_NAME = "user_username_idx"
)

const userColumns = `id, username, email, password_hash, is_active, created_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) *PgxUserRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: conn}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (username, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		string(input.Username),
		encodeEmail(input.Email),
		string(input.PasswordHash),
		input.IsActive,
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if err != nil {
		return u, decodeUniqueViolation(err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	assignments := make([]string, 0, 2)
	args := []interface{}{int64(input.ID)}
	if input.DoEmailUpdate {
		args = append(args, encodeEmail(input.Email))
		assignments = append(assignments, fmt.Sprintf("email = $%d", len(args)))
	}
	if input.DoIsActiveUpdate {
		args = append(args, input.IsActive)
		assignments = append(assignments, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, input.ID)
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET `+strings.Join(assignments, ", ")+` WHERE id = $1 RETURNING `+userColumns,
		args...,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, decodeUniqueViolation(err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func decodeUniqueViolation(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case EMAIL_CONSTRAINT_NAME:
		return user.ErrEmailAlreadyExists
	case USERNAME_CONSTRAINT_NAME:
		return user.ErrUsernameAlreadyExists
	}
	return err
}

func encodeEmail(email c.Optional[c.Email]) pgtype.Text {
	if !email.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: string(email.Value), Status: pgtype.Present}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		username     string
		email        pgtype.Text
		passwordHash string
		isActive     bool
		createdAt    time.Time
	)
	if err = row.Scan(&id, &username, &email, &passwordHash, &isActive, &createdAt); err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Username:     user.Username(username),
		Email:        c.NewOptional(c.Email(email.String), email.Status == pgtype.Present),
		PasswordHash: user.PasswordHash(passwordHash),
		IsActive:     isActive,
		CreatedAt:    createdAt.UTC(),
	}, nil
}
