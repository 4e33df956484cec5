package services

import (
	"testing"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.LoginID == user.LoginID {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return user.ID, nil
}

func (f *fakeUserRepo) GetUserByID(id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUsers(page, pageSize int) ([]models.User, int, error) {
	out := []models.User{}
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) FindUserByLoginID(loginID string) (*models.User, error) {
	for _, user := range f.users {
		if user.LoginID == loginID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) UpdateUser(_ repositories.SQLExecutor, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func TestRegisterAndLoginUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewUserService(userRepo, nil)

	user, err := service.RegisterUser(RegisterUserRequest{
		LoginID:  "chef.anna",
		Password: "super-secret-1",
		Name:     "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultUserRole, user.Role)
	assert.Empty(t, user.PasswordHash)

	// The stored hash must verify against the original password.
	resp, err := service.LoginUser(LoginRequest{LoginID: "chef.anna", Password: "super-secret-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestLoginUserWrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewUserService(userRepo, nil)

	_, err := service.RegisterUser(RegisterUserRequest{
		LoginID:  "chef.anna",
		Password: "super-secret-1",
		Name:     "Anna",
	})
	require.NoError(t, err)

	_, err = service.LoginUser(LoginRequest{LoginID: "chef.anna", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.LoginUser(LoginRequest{LoginID: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUserDuplicateLoginID(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewUserService(userRepo, nil)

	_, err := service.RegisterUser(RegisterUserRequest{
		LoginID:  "chef.anna",
		Password: "super-secret-1",
		Name:     "Anna",
	})
	require.NoError(t, err)

	_, err = service.RegisterUser(RegisterUserRequest{
		LoginID:  "chef.anna",
		Password: "another-secret",
		Name:     "Other Anna",
	})
	assert.ErrorIs(t, err, ErrLoginIDExists)
}
