package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"frota/internal/db"
)

// ErrDuplicateEmail is returned when an insert or update hits the unique
// index on users.email.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(u *db.User) error
	GetByID(id string) (*db.User, error)
	GetByEmail(email string) (*db.User, error)
	List() ([]db.User, error)
	Update(u *db.User) error
	Delete(id string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{DB: database}
}

const userColumns = `id, name, email, password_hash, phone, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(u *db.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, u.ID, u.Name, u.Email, u.PasswordHash, u.Phone).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	u, err := scanUser(r.DB.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	u, err := scanUser(r.DB.QueryRow(query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) List() ([]db.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(u *db.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, phone = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRow(query, u.ID, u.Name, u.Email, u.PasswordHash, u.Phone).Scan(&u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}
