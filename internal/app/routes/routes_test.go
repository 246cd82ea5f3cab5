package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/controllers"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/internal/pkg/websocket"
)

// The stub services return canned data; the router tests only care about
// which middleware group a route sits in.

type stubAuthService struct{}

func (s *stubAuthService) Register(context.Context, *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{}, nil
}
func (s *stubAuthService) Login(context.Context, *dto.LoginRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{}, nil
}
func (s *stubAuthService) RefreshToken(context.Context, string) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{}, nil
}

type stubUserService struct{}

func (s *stubUserService) GetProfile(context.Context, int64) (*models.User, error) {
	return &models.User{ID: 7, Email: "jane@campus.edu"}, nil
}
func (s *stubUserService) UpdateProfile(context.Context, int64, *dto.UpdateProfileRequest) (*models.User, error) {
	return &models.User{ID: 7}, nil
}
func (s *stubUserService) List(context.Context, models.Actor, *dto.UserFilterRequest) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserService) Deactivate(context.Context, models.Actor, int64) error { return nil }

type stubEventService struct{}

func (s *stubEventService) List(context.Context, models.Actor, *dto.EventFilterRequest) ([]models.Event, int64, error) {
	return []models.Event{}, 0, nil
}
func (s *stubEventService) Get(context.Context, int64) (*models.Event, error) {
	return &models.Event{ID: 5}, nil
}
func (s *stubEventService) Create(context.Context, models.Actor, *dto.CreateEventRequest) (*models.Event, error) {
	return &models.Event{}, nil
}
func (s *stubEventService) Update(context.Context, models.Actor, int64, *dto.UpdateEventRequest) (*models.Event, error) {
	return &models.Event{}, nil
}
func (s *stubEventService) Delete(context.Context, models.Actor, int64) error { return nil }
func (s *stubEventService) Approve(context.Context, models.Actor, int64) (*models.Event, error) {
	return &models.Event{}, nil
}
func (s *stubEventService) Reject(context.Context, models.Actor, int64) error { return nil }
func (s *stubEventService) Register(context.Context, models.Actor, int64) (*models.Event, error) {
	return &models.Event{}, nil
}
func (s *stubEventService) CancelRegistration(context.Context, models.Actor, int64) error {
	return nil
}

type stubClubService struct{}

func (s *stubClubService) List(context.Context, models.Actor, *dto.ClubFilterRequest) ([]models.Club, int64, error) {
	return []models.Club{}, 0, nil
}
func (s *stubClubService) Get(context.Context, int64) (*models.Club, error) {
	return &models.Club{ID: 4}, nil
}
func (s *stubClubService) Create(context.Context, models.Actor, *dto.CreateClubRequest) (*models.Club, error) {
	return &models.Club{}, nil
}
func (s *stubClubService) Update(context.Context, models.Actor, int64, *dto.UpdateClubRequest) (*models.Club, error) {
	return &models.Club{}, nil
}
func (s *stubClubService) Delete(context.Context, models.Actor, int64) error { return nil }
func (s *stubClubService) Approve(context.Context, models.Actor, int64) (*models.Club, error) {
	return &models.Club{}, nil
}
func (s *stubClubService) Reject(context.Context, models.Actor, int64) error { return nil }
func (s *stubClubService) Join(context.Context, models.Actor, int64) (*models.Club, error) {
	return &models.Club{}, nil
}
func (s *stubClubService) Leave(context.Context, models.Actor, int64) error { return nil }
func (s *stubClubService) UpdateMemberRole(context.Context, models.Actor, int64, int64, models.MemberRole) (*models.Club, error) {
	return &models.Club{}, nil
}

type stubFeedbackService struct{}

func (s *stubFeedbackService) List(context.Context, models.Actor, *dto.FeedbackFilterRequest) ([]models.Feedback, int64, error) {
	return []models.Feedback{}, 0, nil
}
func (s *stubFeedbackService) Get(context.Context, models.Actor, int64) (*models.Feedback, error) {
	return &models.Feedback{ID: 9}, nil
}
func (s *stubFeedbackService) Create(context.Context, models.Actor, *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	return &models.Feedback{}, nil
}
func (s *stubFeedbackService) Update(context.Context, models.Actor, int64, *dto.UpdateFeedbackRequest) (*models.Feedback, error) {
	return &models.Feedback{}, nil
}
func (s *stubFeedbackService) Delete(context.Context, models.Actor, int64) error { return nil }
func (s *stubFeedbackService) Respond(context.Context, models.Actor, int64, string) (*models.Feedback, error) {
	return &models.Feedback{}, nil
}
func (s *stubFeedbackService) Vote(context.Context, models.Actor, int64, models.VoteType) (*models.Feedback, error) {
	return &models.Feedback{}, nil
}

type stubLostFoundService struct{}

func (s *stubLostFoundService) List(context.Context, *dto.LostFoundFilterRequest) ([]models.LostFoundItem, int64, error) {
	return []models.LostFoundItem{}, 0, nil
}
func (s *stubLostFoundService) Get(context.Context, int64) (*models.LostFoundItem, error) {
	return &models.LostFoundItem{ID: 5}, nil
}
func (s *stubLostFoundService) Create(context.Context, models.Actor, *dto.CreateLostFoundRequest) (*models.LostFoundItem, error) {
	return &models.LostFoundItem{}, nil
}
func (s *stubLostFoundService) Update(context.Context, models.Actor, int64, *dto.UpdateLostFoundRequest) (*models.LostFoundItem, error) {
	return &models.LostFoundItem{}, nil
}
func (s *stubLostFoundService) Delete(context.Context, models.Actor, int64) error { return nil }
func (s *stubLostFoundService) Claim(context.Context, models.Actor, int64) (*models.LostFoundItem, error) {
	return &models.LostFoundItem{}, nil
}
func (s *stubLostFoundService) Resolve(context.Context, models.Actor, int64) (*models.LostFoundItem, error) {
	return &models.LostFoundItem{}, nil
}
func (s *stubLostFoundService) Match(context.Context, models.Actor, int64, int64) (*models.LostFoundItem, error) {
	return &models.LostFoundItem{}, nil
}

type stubAnnouncementService struct{}

func (s *stubAnnouncementService) List(context.Context, models.Actor, *dto.AnnouncementFilterRequest) ([]models.Announcement, int64, error) {
	return []models.Announcement{}, 0, nil
}
func (s *stubAnnouncementService) Get(context.Context, models.Actor, int64) (*models.Announcement, error) {
	return &models.Announcement{ID: 2}, nil
}
func (s *stubAnnouncementService) Create(context.Context, models.Actor, *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	return &models.Announcement{}, nil
}
func (s *stubAnnouncementService) Update(context.Context, models.Actor, int64, *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	return &models.Announcement{}, nil
}
func (s *stubAnnouncementService) Delete(context.Context, models.Actor, int64) error { return nil }
func (s *stubAnnouncementService) MarkRead(context.Context, models.Actor, int64) error {
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "route-test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "campushub-test",
	})
}

func newTestRouter(t *testing.T, jwtService *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	lgr := zerolog.Nop()
	hub := websocket.NewHub(lgr)

	SetupRouter(router,
		controllers.NewAuthController(&stubAuthService{}, lgr),
		controllers.NewUserController(&stubUserService{}),
		controllers.NewEventController(&stubEventService{}),
		controllers.NewClubController(&stubClubService{}),
		controllers.NewFeedbackController(&stubFeedbackService{}),
		controllers.NewLostFoundController(&stubLostFoundService{}),
		controllers.NewAnnouncementController(&stubAnnouncementService{}),
		websocket.NewHandler(hub, lgr),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnonymousReadsAllowed(t *testing.T) {
	router := newTestRouter(t, testJWTService())

	for _, path := range []string{
		"/api/v1/events",
		"/api/v1/events/5",
		"/api/v1/clubs",
		"/api/v1/clubs/4",
		"/api/v1/feedback",
		"/api/v1/feedback/9",
		"/api/v1/lost-found",
		"/api/v1/lost-found/5",
		"/api/v1/announcements",
		"/api/v1/announcements/2",
		"/api/v1/health",
	} {
		w := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, "GET %s should be readable without a token", path)
	}
}

func TestAnonymousWritesRejected(t *testing.T) {
	router := newTestRouter(t, testJWTService())

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/events"},
		{http.MethodPut, "/api/v1/events/5"},
		{http.MethodDelete, "/api/v1/events/5"},
		{http.MethodPost, "/api/v1/events/5/register"},
		{http.MethodPost, "/api/v1/clubs/4/members"},
		{http.MethodPost, "/api/v1/feedback"},
		{http.MethodPost, "/api/v1/lost-found/5/claim"},
		{http.MethodPost, "/api/v1/announcements/2/read"},
		{http.MethodGet, "/api/v1/users/me"},
	}
	for _, tc := range cases {
		w := doRequest(router, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s should require a token", tc.method, tc.path)
	}
}

func TestAuthenticatedProfileAccess(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(t, jwtService)

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID: 7, Email: "jane@campus.edu", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/v1/users/me", accessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffRoutesRejectStudents(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(t, jwtService)

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID: 7, Email: "jane@campus.edu", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/events/5/approve", accessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
