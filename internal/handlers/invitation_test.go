package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brfservice/brf-portal-api/internal/constants"
	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/dto"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"github.com/brfservice/brf-portal-api/internal/services"
	"github.com/brfservice/brf-portal-api/internal/utils"
)

type invitationHandlerTestEnv struct {
	db      *gorm.DB
	handler *InvitationHandler
	router  *gin.Engine
	org     *models.Organization
}

func setupInvitationHandlerTestEnv(t *testing.T) invitationHandlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.UserProfile{},
		&models.UserRole{},
		&models.Invitation{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	invitationRepo := repository.NewInvitationRepository(db)
	userRepo := repository.NewUserRepository(db)
	invitationService := services.NewInvitationService(invitationRepo, userRepo)
	handler := NewInvitationHandler(invitationService)

	org := &models.Organization{Name: "Brf Solgläntan"}
	require.NoError(t, db.Create(org).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("secret"))
	router.Use(sessions.Sessions(constants.SessionCookieName, store))
	router.GET("/api/invitations/:token", handler.Validate)
	router.POST("/api/invitations/:token/accept", handler.Accept)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return invitationHandlerTestEnv{
		db:      db,
		handler: handler,
		router:  router,
		org:     org,
	}
}

func (env invitationHandlerTestEnv) createInvitation(t *testing.T, email string, expiresAt time.Time) *models.Invitation {
	t.Helper()

	invitation := &models.Invitation{
		Email:          email,
		OrganizationID: env.org.ID,
		Role:           models.RoleBrfUser,
		Token:          utils.NewToken(),
		ExpiresAt:      expiresAt,
	}
	require.NoError(t, env.db.Create(invitation).Error)
	return invitation
}

func TestInvitationHandler_Validate(t *testing.T) {
	env := setupInvitationHandlerTestEnv(t)
	invitation := env.createInvitation(t, "ny@example.com", time.Now().Add(24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/invitations/"+invitation.Token, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.InvitationPreviewDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ny@example.com", response.Email)
	require.Equal(t, env.org.Name, response.OrganizationName)
	require.Equal(t, models.RoleBrfUser, response.Role)
}

func TestInvitationHandler_Validate_Expired(t *testing.T) {
	env := setupInvitationHandlerTestEnv(t)
	invitation := env.createInvitation(t, "sen@example.com", time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/invitations/"+invitation.Token, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusGone, w.Code)
}

func TestInvitationHandler_Accept(t *testing.T) {
	env := setupInvitationHandlerTestEnv(t)
	invitation := env.createInvitation(t, "anna@example.com", time.Now().Add(24*time.Hour))

	payload := map[string]string{
		"first_name": "Anna",
		"last_name":  "Svensson",
		"password":   "hemligt123",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/invitations/"+invitation.Token+"/accept", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "anna@example.com", response.Email)

	// Acceptance logs the new user in.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestInvitationHandler_Accept_Consumed(t *testing.T) {
	env := setupInvitationHandlerTestEnv(t)
	invitation := env.createInvitation(t, "erik@example.com", time.Now().Add(24*time.Hour))

	accepted := time.Now()
	require.NoError(t, env.db.Model(invitation).Update("accepted_at", &accepted).Error)

	payload := map[string]string{
		"first_name": "Erik",
		"last_name":  "Lund",
		"password":   "hemligt123",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/invitations/"+invitation.Token+"/accept", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusGone, w.Code)
}
