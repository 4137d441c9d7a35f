package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brfservice/brf-portal-api/internal/constants"
	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/dto"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"github.com/brfservice/brf-portal-api/internal/services"
)

type authHandlerTestEnv struct {
	db      *gorm.DB
	handler *AuthHandler
}

func setupAuthHandlerTestEnv(t *testing.T) authHandlerTestEnv {
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
	orgRepo := repository.NewOrganizationRepository(db)
	authService := services.NewAuthService(userRepo)
	identityService := services.NewIdentityService(userRepo)
	orgService := services.NewOrganizationService(orgRepo)
	handler := NewAuthHandler(authService, identityService, orgService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authHandlerTestEnv{
		db:      db,
		handler: handler,
	}
}

func (env authHandlerTestEnv) createUser(t *testing.T, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: string(hash)}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)
	env.createUser(t, "styrelsen@example.com", "hemligt123")

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "styrelsen@example.com",
		"password": "hemligt123",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["email"], response.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)
	env.createUser(t, "styrelsen@example.com", "hemligt123")

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "styrelsen@example.com",
		"password": "fel-losenord",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)
	user := env.createUser(t, "anna@example.com", "hemligt123")

	org := &models.Organization{Name: "Brf Solgläntan"}
	require.NoError(t, env.db.Create(org).Error)

	orgID := org.ID
	require.NoError(t, env.db.Create(&models.UserProfile{
		UserID:         user.ID,
		OrganizationID: &orgID,
		FirstName:      "Anna",
		LastName:       "Svensson",
		Email:          user.Email,
	}).Error)
	require.NoError(t, env.db.Create(&models.UserRole{
		UserID: user.ID,
		Role:   models.RoleBrfAdmin,
	}).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.User.Email)
	require.NotNil(t, response.Profile)
	require.NotNil(t, response.Organization)
	require.Equal(t, org.Name, response.Organization.Name)
	require.Equal(t, []models.Role{models.RoleBrfAdmin}, response.Roles)
}

// An authenticated user without profile or roles still gets a bootstrap
// payload, with null organization and an empty role list.
func TestAuthHandler_GetCurrentUser_Unprovisioned(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)
	user := env.createUser(t, "ny@example.com", "hemligt123")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.Profile)
	require.Nil(t, response.Organization)
	require.Empty(t, response.Roles)
}

func TestAuthHandler_ResetPasswordFlow(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)
	user := env.createUser(t, "glomt@example.com", "hemligt123")

	r := gin.New()
	r.POST("/api/auth/forgot-password", env.handler.RequestPasswordReset)
	r.POST("/api/auth/reset-password", env.handler.ResetPassword)

	// Request a reset. The response is generic.
	body, err := json.Marshal(map[string]string{"email": user.Email})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var reset models.PasswordReset
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&reset).Error)

	// Consume the token.
	body, err = json.Marshal(map[string]string{
		"token":        reset.Token,
		"new_password": "nytt-losenord",
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// A second use fails.
	body, err = json.Marshal(map[string]string{
		"token":        reset.Token,
		"new_password": "tredje-losenordet",
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
