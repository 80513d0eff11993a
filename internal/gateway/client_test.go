package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func staticToken(token string) TokenSource {
	return func(ctx context.Context) (string, bool) { return token, true }
}

func noToken() TokenSource {
	return func(ctx context.Context) (string, bool) { return "", false }
}

func TestBearerHeaderAttachedWhenTokenAvailable(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"suggestion": "rest and fluids"})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, staticToken("tok-123"), testLogger())

	suggestion, err := c.DoctorAssist(context.Background(), "3173051234567890", "")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "rest and fluids", suggestion)
}

func TestBearerHeaderOmittedWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"suggestion": ""})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	_, err := c.DoctorAssist(context.Background(), "3173051234567890", "")
	assert.NoError(t, err)
	assert.Equal(t, "", gotAuth)
}

func TestNon2xxBecomesAPIErrorWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "fo_note must not be empty"})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	_, err := c.AnalyzeTicket(context.Background(), "", nil)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "fo_note must not be empty", apiErr.Message)
}

func TestNon2xxWithoutDetailKeepsGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	err := c.CompleteCheckup(context.Background(), 4, CompleteCheckupRequest{DoctorNote: "n"})
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "request failed (502)", apiErr.Message)
}

func TestAnalyzeTicketSoftErrorBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with status "error": some backends report failure this way.
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "model overloaded"})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	_, err := c.AnalyzeTicket(context.Background(), "chest pain", nil)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 200, apiErr.Status)
	assert.Equal(t, "model overloaded", apiErr.Message)
}

func TestQuestionsEndpointSendsBareString(t *testing.T) {
	var rawBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "success",
			"questions": []string{"How long?", "Any fever?"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	questions, err := c.GeneratePreAssessmentQuestions(context.Background(), "I feel dizzy")
	assert.NoError(t, err)
	assert.Len(t, questions, 2)

	// The body is a bare JSON string, not an object.
	assert.Equal(t, `"I feel dizzy"`, string(rawBody))
}

func TestSubmitEndpointSendsBareArray(t *testing.T) {
	var rawBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "severity_level": "low"})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	result, err := c.SubmitPreAssessment(context.Background(), []QAEntry{
		{Role: "user", Content: "headache"},
		{Role: "assistant", Content: "since when?"},
		{Role: "user", Content: "yesterday"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "low", result.SeverityLevel)

	// The body is a bare JSON array of turns.
	var decoded []QAEntry
	assert.NoError(t, json.Unmarshal(rawBody, &decoded))
	assert.Len(t, decoded, 3)
	assert.Equal(t, "user", decoded[0].Role)
}

func TestDecodeMismatchFailsLoudly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"patients": "not-a-number"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	_, err := c.AdminStats(context.Background())
	assert.Error(t, err)

	// A shape mismatch is a decode failure, not an APIError.
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "decode response")
}

func TestAssignDoctorHitsTicketPath(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = strings.TrimSpace(string(raw))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, noToken(), testLogger())

	doctorID := uuid.MustParse("7b0d12a5-9c4e-4f3a-8a2b-1d6f0c9e5a31")
	err := c.AssignDoctor(context.Background(), 42, doctorID)
	assert.NoError(t, err)
	assert.Equal(t, "/api/tickets/42/assign-doctor", gotPath)
	assert.Equal(t, `{"doctor_id":"7b0d12a5-9c4e-4f3a-8a2b-1d6f0c9e5a31"}`, gotBody)
}
