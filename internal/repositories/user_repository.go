package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teamcook_backend/internal/models"

	"github.com/lib/pq"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUsers(page, pageSize int) ([]models.User, int, error)
	FindUserByLoginID(loginID string) (*models.User, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	DeleteUser(executor SQLExecutor, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (login_id, password_hash, name, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query, user.LoginID, user.PasswordHash, user.Name, user.Role).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: login_id '%s' already exists (constraint: %s)", ErrDuplicateKey, user.LoginID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, login_id, password_hash, name, role FROM users WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.LoginID, &user.PasswordHash, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

func (r *userRepository) GetUsers(page, pageSize int) ([]models.User, int, error) {
	users := []models.User{}
	totalCount := 0
	query := `SELECT id, login_id, password_hash, name, role, COUNT(*) OVER() AS total_count
	          FROM users
	          ORDER BY login_id
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.LoginID, &user.PasswordHash, &user.Name, &user.Role, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating users: %v", ErrDatabaseError, err)
	}
	return users, totalCount, nil
}

func (r *userRepository) FindUserByLoginID(loginID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, login_id, password_hash, name, role FROM users WHERE login_id = $1`
	err := r.db.QueryRow(query, loginID).Scan(&user.ID, &user.LoginID, &user.PasswordHash, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by login_id '%s': %v", ErrDatabaseError, loginID, err)
	}
	return user, nil
}

func (r *userRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET login_id = $1, password_hash = $2, name = $3, role = $4 WHERE id = $5`
	result, err := executor.Exec(query, user.LoginID, user.PasswordHash, user.Name, user.Role, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: login_id '%s' already exists (constraint: %s)", ErrDuplicateKey, user.LoginID, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) DeleteUser(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
