package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
)

type authTestEnv struct {
	db      *gorm.DB
	service *AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.UserProfile{},
		&models.UserRole{},
		&models.PasswordReset{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		service: service,
	}
}

func (env authTestEnv) createUser(t *testing.T, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestAuthService_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "styrelsen@example.com", "hemligt123")

	user, err := env.service.Login(LoginInput{
		Email:    "styrelsen@example.com",
		Password: "hemligt123",
	})
	require.NoError(t, err)
	require.Equal(t, "styrelsen@example.com", user.Email)
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "styrelsen@example.com", "hemligt123")

	user, err := env.service.Login(LoginInput{
		Email:    "  Styrelsen@Example.COM ",
		Password: "hemligt123",
	})
	require.NoError(t, err)
	require.Equal(t, "styrelsen@example.com", user.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "styrelsen@example.com", "hemligt123")

	_, err := env.service.Login(LoginInput{
		Email:    "styrelsen@example.com",
		Password: "fel-losenord",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.service.Login(LoginInput{
		Email:    "okand@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "styrelsen@example.com", "hemligt123")

	err := env.service.UpdatePassword(user.ID, "hemligt123", "nytt-losenord")
	require.NoError(t, err)

	_, err = env.service.Login(LoginInput{Email: user.Email, Password: "nytt-losenord"})
	require.NoError(t, err)
	_, err = env.service.Login(LoginInput{Email: user.Email, Password: "hemligt123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdatePassword_WrongCurrent(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "styrelsen@example.com", "hemligt123")

	err := env.service.UpdatePassword(user.ID, "fel", "nytt-losenord")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdatePassword_TooShort(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "styrelsen@example.com", "hemligt123")

	err := env.service.UpdatePassword(user.ID, "hemligt123", "abc")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "styrelsen@example.com", "hemligt123")

	reset, err := env.service.RequestPasswordReset(user.Email)
	require.NoError(t, err)
	require.NotNil(t, reset)
	require.NotEmpty(t, reset.Token)
	require.True(t, reset.ExpiresAt.After(time.Now()))
}

// Requests for unknown emails succeed without creating anything, so the
// endpoint cannot be used to probe which accounts exist.
func TestAuthService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	reset, err := env.service.RequestPasswordReset("okand@example.com")
	require.NoError(t, err)
	require.Nil(t, reset)

	var count int64
	require.NoError(t, env.db.Model(&models.PasswordReset{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestAuthService_ResetPassword_SingleUse(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "styrelsen@example.com", "hemligt123")

	reset, err := env.service.RequestPasswordReset(user.Email)
	require.NoError(t, err)

	err = env.service.ResetPassword(reset.Token, "nytt-losenord")
	require.NoError(t, err)

	_, err = env.service.Login(LoginInput{Email: user.Email, Password: "nytt-losenord"})
	require.NoError(t, err)

	// The token is spent.
	err = env.service.ResetPassword(reset.Token, "annat-losenord")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestAuthService_ResetPassword_Expired(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "styrelsen@example.com", "hemligt123")

	reset, err := env.service.RequestPasswordReset(user.Email)
	require.NoError(t, err)

	err = env.db.Model(&models.PasswordReset{}).
		Where("id = ?", reset.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	err = env.service.ResetPassword(reset.Token, "nytt-losenord")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}
