package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{
		db: q,
		sb: statementBuilder(),
	}
}

// WithTx returns a copy bound to tx
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx, sb: r.sb}
}

// Create inserts a user and fills in its id and created_at
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, user.Username, user.Email, user.Password, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUsernameOrEmailExists
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return wrapError("create user", err)
	}
	return nil
}

// ExistsByUsernameOrEmail checks whether either identity is already registered
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email).Scan(&exists)
	if err != nil {
		return false, wrapError("check user existence", err)
	}
	return exists, nil
}

// GetByUsername retrieves a user, including the password digest, by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, created_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, notFound("get user by username", err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, notFound("get user by id", err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// List retrieves all users without their password digests, optionally
// restricted to one role
func (r *UserRepository) List(ctx context.Context, role models.Role) ([]*models.User, error) {
	q := r.sb.Select("id", "username", "email", "role", "created_at").
		From("users").
		OrderBy("id")
	if role != "" {
		q = q.Where(squirrel.Eq{"role": role})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrapError("build list users query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError("list users", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, wrapError("scan user", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate users", err)
	}
	return users, nil
}

// CountByRole counts users holding role
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, wrapError("count users", err)
	}
	return count, nil
}

// UpdatePassword replaces a user's password digest
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, digest string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, digest, id)
	if err != nil {
		return wrapError("update password", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete user", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
