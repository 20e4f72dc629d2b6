package signup

import (
	"context"
	"errors"
	"fmt"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"registrar/internal/db"
	"strings"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const signupColumns = `s.user_id, s.last_active, s.activation_key, s.activation_notified,
	s.email_unconfirmed, s.email_confirmation_key, s.email_confirmation_key_created`

const userColumns = `u.id, u.username, u.email, u.password_hash, u.is_active, u.created_at`

type PgxSignupRepository struct {
	db db.DBTX
}

func NewPgxSignupRepository(conn db.DBTX) *PgxSignupRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxSignupRepository{db: conn}
}

func (r *PgxSignupRepository) Create(ctx context.Context, input signup.CreateInput) (s signup.Signup, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO signup AS s (user_id, activation_key) VALUES ($1, $2) RETURNING `+signupColumns,
		int64(input.UserID),
		string(input.ActivationKey),
	)
	return scanSignup(row)
}

func (r *PgxSignupRepository) GetByUserID(ctx context.Context, userID user.ID) (signup.Signup, error) {
	return r.getOne(ctx, `s.user_id = $1`, int64(userID))
}

func (r *PgxSignupRepository) GetByActivationKey(ctx context.Context, key signup.ActivationKey) (signup.Signup, error) {
	return r.getOne(ctx, `s.activation_key = $1`, string(key))
}

func (r *PgxSignupRepository) GetByConfirmationKey(ctx context.Context, key signup.ConfirmationKey) (signup.Signup, error) {
	return r.getOne(ctx, `s.email_confirmation_key = $1`, string(key))
}

func (r *PgxSignupRepository) getOne(ctx context.Context, condition string, arg interface{}) (s signup.Signup, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+signupColumns+` FROM signup s WHERE `+condition+` FOR UPDATE`, arg)
	s, err = scanSignup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, signup.ErrSignupDoesNotExist
	}
	return s, err
}

func (r *PgxSignupRepository) Save(ctx context.Context, s signup.Signup) (saved signup.Signup, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE signup AS s SET
			last_active = $2,
			activation_key = $3,
			activation_notified = $4,
			email_unconfirmed = $5,
			email_confirmation_key = $6,
			email_confirmation_key_created = $7
		WHERE s.user_id = $1
		RETURNING `+signupColumns,
		int64(s.UserID),
		encodeTime(s.LastActive),
		string(s.ActivationKey),
		s.ActivationNotified,
		encodeText(string(s.EmailUnconfirmed.Value), s.EmailUnconfirmed.IsPresent),
		encodeText(string(s.EmailConfirmationKey.Value), s.EmailConfirmationKey.IsPresent),
		encodeTime(s.EmailConfirmationKeyCreated),
	)
	saved, err = scanSignup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return saved, signup.ErrSignupDoesNotExist
	}
	return saved, err
}

func (r *PgxSignupRepository) Delete(ctx context.Context, userID user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM signup WHERE user_id = $1`, int64(userID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return signup.ErrSignupDoesNotExist
	}
	return nil
}

func (r *PgxSignupRepository) List(ctx context.Context, options signup.ListOptions) ([]signup.Registration, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if options.IsActive.IsPresent {
		args = append(args, options.IsActive.Value)
		conditions = append(conditions, fmt.Sprintf("u.is_active = $%d", len(args)))
	}
	if options.ActivationNotified.IsPresent {
		args = append(args, options.ActivationNotified.Value)
		conditions = append(conditions, fmt.Sprintf("s.activation_notified = $%d", len(args)))
	}
	if options.JoinedBefore.IsPresent {
		args = append(args, options.JoinedBefore.Value)
		conditions = append(conditions, fmt.Sprintf("u.created_at <= $%d", len(args)))
	}
	query := `SELECT ` + userColumns + `, ` + signupColumns + `
		FROM signup s JOIN "user" u ON u.id = s.user_id`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY u.id FOR UPDATE OF s`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]signup.Registration, 0)
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}
	return registrations, rows.Err()
}

type signupRow struct {
	userID                      int64
	lastActive                  pgtype.Timestamptz
	activationKey               string
	activationNotified          bool
	emailUnconfirmed            pgtype.Text
	emailConfirmationKey        pgtype.Text
	emailConfirmationKeyCreated pgtype.Timestamptz
}

func (r *signupRow) targets() []interface{} {
	return []interface{}{
		&r.userID,
		&r.lastActive,
		&r.activationKey,
		&r.activationNotified,
		&r.emailUnconfirmed,
		&r.emailConfirmationKey,
		&r.emailConfirmationKeyCreated,
	}
}

func (r *signupRow) decode() signup.Signup {
	return signup.Signup{
		UserID:             user.ID(r.userID),
		LastActive:         decodeTime(r.lastActive),
		ActivationKey:      signup.ActivationKey(r.activationKey),
		ActivationNotified: r.activationNotified,
		EmailUnconfirmed: c.NewOptional(
			c.Email(r.emailUnconfirmed.String),
			r.emailUnconfirmed.Status == pgtype.Present,
		),
		EmailConfirmationKey: c.NewOptional(
			signup.ConfirmationKey(r.emailConfirmationKey.String),
			r.emailConfirmationKey.Status == pgtype.Present,
		),
		EmailConfirmationKeyCreated: decodeTime(r.emailConfirmationKeyCreated),
	}
}

func scanSignup(row pgx.Row) (s signup.Signup, err error) {
	r := signupRow{}
	if err = row.Scan(r.targets()...); err != nil {
		return s, err
	}
	return r.decode(), nil
}

func scanRegistration(rows pgx.Rows) (registration signup.Registration, err error) {
	var (
		id           int64
		username     string
		email        pgtype.Text
		passwordHash string
		isActive     bool
		createdAt    time.Time
	)
	r := signupRow{}
	targets := append(
		[]interface{}{&id, &username, &email, &passwordHash, &isActive, &createdAt},
		r.targets()...,
	)
	if err = rows.Scan(targets...); err != nil {
		return registration, err
	}
	return signup.Registration{
		User: user.User{
			ID:           user.ID(id),
			Username:     user.Username(username),
			Email:        c.NewOptional(c.Email(email.String), email.Status == pgtype.Present),
			PasswordHash: user.PasswordHash(passwordHash),
			IsActive:     isActive,
			CreatedAt:    createdAt.UTC(),
		},
		Signup: r.decode(),
	}, nil
}

func encodeText(value string, isPresent bool) pgtype.Text {
	if !isPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: value, Status: pgtype.Present}
}

func encodeTime(at c.Optional[time.Time]) pgtype.Timestamptz {
	if !at.IsPresent {
		return pgtype.Timestamptz{Status: pgtype.Null}
	}
	return pgtype.Timestamptz{Time: at.Value, Status: pgtype.Present}
}

func decodeTime(at pgtype.Timestamptz) c.Optional[time.Time] {
	return c.NewOptional(at.Time.UTC(), at.Status == pgtype.Present)
}
