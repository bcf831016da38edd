package repository

import (
	"context"
	"errors"
	"fmt"

	"church_membership/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone *string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
	FindAdmins(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context) (*model.UserCounts, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, phone, profile_pic, age, marital_status, sex, role, address, occupation, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.ProfilePic,
		&user.Age, &user.MaritalStatus, &user.Sex, &user.Role,
		&user.Address, &user.Occupation, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, name, email, phone, profile_pic, age, marital_status, sex, role, address, occupation, password_hash, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, sql,
		user.ID, user.Name, user.Email, user.Phone, user.ProfilePic,
		user.Age, user.MaritalStatus, user.Sex, user.Role,
		user.Address, user.Occupation, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return nil
}

// FindByID retrieves a user by their ID. Not found is reported as (nil, nil);
// the service layer decides whether that is an error.
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmailOrPhone retrieves a user matching the given email or phone.
// When both are given a match on either suffices.
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone *string) (*model.User, error) {
	var row pgx.Row
	switch {
	case email != nil && phone != nil:
		row = r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 OR phone = $2`, *email, *phone)
	case email != nil:
		row = r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, *email)
	case phone != nil:
		row = r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, *phone)
	default:
		return nil, fmt.Errorf("either email or phone must be provided")
	}

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email or phone: %w", err)
	}
	return user, nil
}

func (r *userRepository) queryUsers(ctx context.Context, sql string, args ...interface{}) ([]model.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// FindAll retrieves all users ordered by name
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC`)
}

// Search retrieves users whose name, email or phone matches the query
func (r *userRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	pattern := "%" + query + "%"
	sql := `SELECT ` + userColumns + ` FROM users
            WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1
            ORDER BY name ASC`
	return r.queryUsers(ctx, sql, pattern)
}

// FindAdmins retrieves all users with the ADMIN role ordered by name
func (r *userRepository) FindAdmins(ctx context.Context) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY name ASC`
	return r.queryUsers(ctx, sql, model.RoleAdmin)
}

// Update persists all mutable fields of an already-fetched user
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	sql := `UPDATE users
            SET name = $1, email = $2, phone = $3, profile_pic = $4, age = $5,
                marital_status = $6, sex = $7, role = $8, address = $9,
                occupation = $10, password_hash = $11, updated_at = NOW()
            WHERE id = $12 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		user.Name, user.Email, user.Phone, user.ProfilePic, user.Age,
		user.MaritalStatus, user.Sex, user.Role, user.Address,
		user.Occupation, user.PasswordHash, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("user not found for update")
		}
		return fmt.Errorf("failed to update user: %w", translateError(err))
	}
	return nil
}

// Delete removes a user; attendance rows cascade at the store level
func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for deletion")
	}
	return nil
}

// Counts returns roster totals split by role
func (r *userRepository) Counts(ctx context.Context) (*model.UserCounts, error) {
	counts := &model.UserCounts{}
	sql := `SELECT COUNT(*),
                   COALESCE(SUM(CASE WHEN role = 'ADMIN' THEN 1 ELSE 0 END), 0)
            FROM users`
	if err := r.db.QueryRow(ctx, sql).Scan(&counts.Total, &counts.Admins); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	counts.Users = counts.Total - counts.Admins
	return counts, nil
}
