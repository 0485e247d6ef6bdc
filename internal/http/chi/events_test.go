package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/marcelsud/webhook-outbox/delivery/mocks"
	registrationmocks "github.com/marcelsud/webhook-outbox/registration/mocks"
)

func testEventHandlers(t *testing.T, delService *mocks.UseCase) http.Handler {
	t.Helper()
	return Handlers(registrationmocks.NewUseCase(t), delService, nil)
}

func TestPostEvent(t *testing.T) {
	t.Run("accepted with fanned-out job ids", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Publish", mock.Anything, "user.created", mock.Anything).
			Return([]string{"job-1", "job-2"}, nil)

		body := `{"type":"user.created","data":{"id":"u-1"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
		w := httptest.NewRecorder()
		testEventHandlers(t, s).ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)

		var resp eventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "user.created", resp.EventType)
		assert.Equal(t, []string{"job-1", "job-2"}, resp.JobIDs)
	})

	t.Run("accepted with no subscribers", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Publish", mock.Anything, "order.paid", mock.Anything).
			Return([]string{}, nil)

		body := `{"type":"order.paid","data":{}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
		w := httptest.NewRecorder()
		testEventHandlers(t, s).ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("invalid event type", func(t *testing.T) {
		s := mocks.NewUseCase(t)

		body := `{"type":"not a valid type!","data":{}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
		w := httptest.NewRecorder()
		testEventHandlers(t, s).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := mocks.NewUseCase(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader("{oops"))
		w := httptest.NewRecorder()
		testEventHandlers(t, s).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetJob(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		s.On("Get", mock.Anything, "job-1").Return(delivery.Job{
			ID:            "job-1",
			WebhookID:     "wh-1",
			EventName:     "user.created",
			AttemptCount:  2,
			MaxRetries:    3,
			Status:        delivery.Retrying,
			NextAttemptAt: now,
			CreatedAt:     now,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-1", nil)
		w := httptest.NewRecorder()
		testEventHandlers(t, s).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp jobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "job-1", resp.ID)
		assert.Equal(t, "retrying", resp.Status)
		assert.Equal(t, 2, resp.AttemptCount)
	})

	t.Run("not found", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Get", mock.Anything, "missing").Return(delivery.Job{}, delivery.ErrJobNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/missing", nil)
		w := httptest.NewRecorder()
		testEventHandlers(t, s).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetJobAttempts(t *testing.T) {
	s := mocks.NewUseCase(t)
	s.On("History", mock.Anything, "job-1").Return([]delivery.Attempt{
		{JobID: "job-1", Number: 1, Outcome: delivery.OutcomeInvalidResponse, HTTPStatus: 500},
		{JobID: "job-1", Number: 2, Outcome: delivery.OutcomeSuccess, HTTPStatus: 200},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-1/attempts", nil)
	w := httptest.NewRecorder()
	testEventHandlers(t, s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var attempts []delivery.Attempt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &attempts))
	require.Len(t, attempts, 2)
	assert.Equal(t, delivery.OutcomeSuccess, attempts[1].Outcome)
}
