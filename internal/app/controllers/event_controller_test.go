package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func newEventRouter(events *MockEventService, participations *MockParticipationService, userID int64, role models.RoleType) *gin.Engine {
	c := NewEventController(events, participations, testLogger)
	router := gin.New()
	router.GET("/events/:id", c.GetEvent)

	authed := router.Group("")
	authed.Use(asUser(userID, role))
	authed.POST("/events", c.CreateEvent)
	authed.POST("/events/:id/image", c.UploadImage)
	authed.POST("/events/:id/apply", c.Apply)
	authed.DELETE("/events/:id/participation", c.Withdraw)
	authed.POST("/events/:id/participants/:pid/:action", c.Decide)
	return router
}

func actorWithID(id int64) interface{} {
	return mock.MatchedBy(func(a *authz.Actor) bool { return a != nil && a.UserID == id })
}

func TestEventController_GetEvent(t *testing.T) {
	events := new(MockEventService)
	events.On("GetEvent", mock.Anything, int64(3), (*authz.Actor)(nil)).
		Return(&dto.EventDetailResponse{Event: &models.Event{ID: 3, Title: "Beach clean-up"}}, nil)
	events.On("GetEvent", mock.Anything, int64(404), (*authz.Actor)(nil)).
		Return(nil, apperrors.ErrEventNotFound)
	router := newEventRouter(events, new(MockParticipationService), 1, models.RoleVolunteer)

	w := perform(router, http.MethodGet, "/events/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.EventDetailResponse
	decodeSuccess(t, w, &detail)
	assert.Equal(t, "Beach clean-up", detail.Event.Title)

	w = perform(router, http.MethodGet, "/events/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(router, http.MethodGet, "/events/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", decodeError(t, w).Field)
	events.AssertNumberOfCalls(t, "GetEvent", 2)
}

func TestEventController_CreateEvent(t *testing.T) {
	date := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name:           "created",
			body:           map[string]interface{}{"title": "Food drive", "date": date, "location": "Bari", "duration": "temporary"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing location",
			body:           map[string]interface{}{"title": "Food drive", "date": date},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown capacity mode",
			body:           map[string]interface{}{"title": "Food drive", "date": date, "location": "Bari", "capacityMode": "sometimes"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := new(MockEventService)
			events.On("CreateEvent", mock.Anything, actorWithID(9), mock.Anything).
				Return(&models.Event{ID: 11, AssociationID: 9, Title: "Food drive"}, nil)

			w := perform(newEventRouter(events, new(MockParticipationService), 9, models.RoleAssociation), http.MethodPost, "/events", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var event models.Event
				decodeSuccess(t, w, &event)
				assert.Equal(t, int64(11), event.ID)
				events.AssertExpectations(t)
			} else {
				events.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEventController_Apply(t *testing.T) {
	tests := []struct {
		name            string
		result          *dto.OutcomeResponse
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "applied",
			result:          &dto.OutcomeResponse{Outcome: "applied", Message: "Application sent."},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Application sent.",
		},
		{
			name:            "already applied is not an error",
			result:          &dto.OutcomeResponse{Outcome: "already_applied", Message: "You have already applied to this event."},
			expectedStatus:  http.StatusOK,
			expectedMessage: "You have already applied to this event.",
		},
		{name: "unknown event", err: apperrors.ErrEventNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participations := new(MockParticipationService)
			if tt.err != nil {
				participations.On("Apply", mock.Anything, actorWithID(4), int64(8)).Return(nil, tt.err)
			} else {
				participations.On("Apply", mock.Anything, actorWithID(4), int64(8)).Return(tt.result, nil)
			}

			w := perform(newEventRouter(new(MockEventService), participations, 4, models.RoleVolunteer), http.MethodPost, "/events/8/apply", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var res dto.OutcomeResponse
				assert.Equal(t, tt.expectedMessage, decodeSuccess(t, w, &res))
				assert.Equal(t, tt.result.Outcome, res.Outcome)
			}
			participations.AssertExpectations(t)
		})
	}
}

func TestEventController_Decide(t *testing.T) {
	participations := new(MockParticipationService)
	participations.On("Decide", mock.Anything, actorWithID(9), int64(8), int64(21), "accept").
		Return(&models.Participation{ID: 21, EventID: 8, Status: domain.ParticipationAccepted}, nil)
	participations.On("Decide", mock.Anything, actorWithID(9), int64(8), int64(22), "accept").
		Return(nil, apperrors.ErrPermissionDenied)
	router := newEventRouter(new(MockEventService), participations, 9, models.RoleAssociation)

	w := perform(router, http.MethodPost, "/events/8/participants/21/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Participation
	decodeSuccess(t, w, &p)
	assert.Equal(t, domain.ParticipationAccepted, p.Status)

	w = perform(router, http.MethodPost, "/events/8/participants/22/accept", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Code)

	w = perform(router, http.MethodPost, "/events/8/participants/0/accept", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "pid", decodeError(t, w).Field)
}

func TestEventController_Withdraw(t *testing.T) {
	participations := new(MockParticipationService)
	participations.On("Withdraw", mock.Anything, actorWithID(4), int64(8)).Return(nil)
	participations.On("Withdraw", mock.Anything, actorWithID(4), int64(9)).Return(apperrors.ErrParticipationNotFound)
	router := newEventRouter(new(MockEventService), participations, 4, models.RoleVolunteer)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodDelete, "/events/8/participation", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/events/9/participation", nil).Code)
}

func TestEventController_UploadImage(t *testing.T) {
	events := new(MockEventService)
	events.On("UploadImage", mock.Anything, actorWithID(9), int64(8), mock.AnythingOfType("*multipart.FileHeader")).
		Return(&dto.UploadResponse{Filename: "event_8.jpg", URL: "/uploads/events/event_8.jpg"}, nil)
	router := newEventRouter(events, new(MockParticipationService), 9, models.RoleAssociation)

	t.Run("missing file", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/events/8/image", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "image", decodeError(t, w).Field)
	})

	t.Run("uploaded", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("image", "beach.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a jpeg"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/events/8/image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.UploadResponse
		decodeSuccess(t, w, &resp)
		assert.Equal(t, "/uploads/events/event_8.jpg", resp.URL)
		events.AssertExpectations(t)
	})
}
