package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyshelf/backend/internal/models"
)

func TestAPIClient_ListCourses(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expected      []models.Course
		expectedError string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `[{"id":"c1","title":"Go","description":"","lessons":[]}]`,
			expected: []models.Course{
				{ID: "c1", Title: "Go", Lessons: models.Lessons{}},
			},
		},
		{
			name:     "empty list",
			status:   http.StatusOK,
			body:     `[]`,
			expected: []models.Course{},
		},
		{
			name:          "server error",
			status:        http.StatusInternalServerError,
			body:          `{"error":"database is locked"}`,
			expectedError: "course service returned 500: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/courses", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			courses, err := NewAPIClient(srv.URL).ListCourses(context.Background())

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
				var apiErr *APIError
				assert.ErrorAs(t, err, &apiErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, courses)
		})
	}
}

func TestAPIClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPIClient(url).ListCourses(context.Background())

	assert.Error(t, err)
}

func TestAPIClient_Mutations(t *testing.T) {
	var gotCreate models.CreateCourseRequest
	var gotPatch map[string]json.RawMessage
	var deleted string

	r := chi.NewRouter()
	r.Post("/courses", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreate))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"id":"`+gotCreate.ID+`"}`)
	})
	r.Patch("/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "missing" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":"Course not found"}`)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPatch))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true}`)
	})
	r.Delete("/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = chi.URLParam(r, "id")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true}`)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	api := NewAPIClient(srv.URL)
	ctx := context.Background()

	id, err := api.CreateCourse(ctx, models.CreateCourseRequest{ID: "abc123xyz", Title: "Go", Lessons: models.Lessons{}})
	require.NoError(t, err)
	assert.Equal(t, "abc123xyz", id)
	assert.Equal(t, "Go", gotCreate.Title)

	title := "Rust"
	require.NoError(t, api.UpdateCourse(ctx, "c1", models.UpdateCourseRequest{Title: &title}))
	assert.Contains(t, gotPatch, "title")
	assert.NotContains(t, gotPatch, "lessons")
	assert.NotContains(t, gotPatch, "description")

	err = api.UpdateCourse(ctx, "missing", models.UpdateCourseRequest{Title: &title})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Course not found", apiErr.Message)

	require.NoError(t, api.DeleteCourse(ctx, "c1"))
	assert.Equal(t, "c1", deleted)
}
