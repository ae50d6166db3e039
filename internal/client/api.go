// Package client talks to the course service and keeps the snapshot the front-end renders from
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/studyshelf/backend/internal/models"
)

// APIError is a non-2xx answer from the course service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("course service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("course service returned %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// APIClient is a thin HTTP client for the four course endpoints
type APIClient struct {
	http *resty.Client
}

// NewAPIClient creates a client for the service at baseURL
func NewAPIClient(baseURL string) *APIClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)
	return &APIClient{http: c}
}

// ListCourses fetches every course
func (c *APIClient) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&courses).
		SetError(&errorBody{}).
		Get("/courses")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// CreateCourse creates a course and returns its id
func (c *APIClient) CreateCourse(ctx context.Context, req models.CreateCourseRequest) (string, error) {
	var out models.CreateCourseResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&errorBody{}).
		Post("/courses")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateCourse sends a partial update
func (c *APIClient) UpdateCourse(ctx context.Context, id string, req models.UpdateCourseRequest) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(req).
		SetError(&errorBody{}).
		Patch("/courses/{id}")
	return checkResponse(resp, err)
}

// DeleteCourse deletes a course
func (c *APIClient) DeleteCourse(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&errorBody{}).
		Delete("/courses/{id}")
	return checkResponse(resp, err)
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	return apiErr
}
