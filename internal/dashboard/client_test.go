package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learning_insight_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPredictSendsMultipartFile(t *testing.T) {
	var gotField string
	var gotContent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		gotField = header.Filename
		data, _ := io.ReadAll(file)
		gotContent = string(data)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"predictions":[{"student_id":1,"completion_probability":0.85,"predicted_completion":true,"risk_level":"Low"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	predictions, err := client.Predict(context.Background(), "upload.csv", strings.NewReader("raw,csv,data"))
	require.NoError(t, err)

	assert.Equal(t, "upload.csv", gotField)
	assert.Equal(t, "raw,csv,data", gotContent)
	require.Len(t, predictions, 1)
	assert.Equal(t, int64(1), predictions[0].StudentID)
	assert.Equal(t, model.RiskLow, predictions[0].RiskLevel)
	assert.True(t, predictions[0].PredictedCompletion)
}

func TestClientPredictNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Predict(context.Background(), "upload.csv", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predict request failed")
}

func TestClientPredictMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"predictions": not-json`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Predict(context.Background(), "upload.csv", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode predict response")
}

func TestClientDifficulty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/difficulty", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"difficulty_analysis":[{"course_id":"C102","chapter_id":7,"score":38.8,"time_spent":49.6,"difficulty_score":98.3}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.Difficulty(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "C102", records[0].CourseID)
	assert.Equal(t, 7, records[0].ChapterID)
	assert.InDelta(t, 98.3, records[0].DifficultyScore, 1e-9)
}

func TestClientDifficultyNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not ready", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Difficulty(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "difficulty request failed")
}
