package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Course represents a course together with the lessons it owns
type Course struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Lessons     Lessons `json:"lessons"`
}

// CreateCourseRequest represents a request to create a course
//
// ID is normally generated by the client. When it is empty the service assigns one.
type CreateCourseRequest struct {
	ID          string  `json:"id" example:"k3j9x0a1b"`
	Title       string  `json:"title" example:"Linear algebra"`
	Description string  `json:"description" example:"Lecture recordings and notes"`
	Lessons     Lessons `json:"lessons"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
//
// A nil field was absent from the request and keeps its stored value. A key sent as
// null is present: it decodes to "" for strings and to an empty sequence for lessons.
type UpdateCourseRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Lessons     *Lessons `json:"lessons,omitempty"`
}

// UnmarshalJSON sets a field whenever its key is present, null included
func (r *UpdateCourseRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = UpdateCourseRequest{}
	if raw, ok := fields["title"]; ok {
		title, err := presentString("title", raw)
		if err != nil {
			return err
		}
		r.Title = &title
	}
	if raw, ok := fields["description"]; ok {
		description, err := presentString("description", raw)
		if err != nil {
			return err
		}
		r.Description = &description
	}
	if raw, ok := fields["lessons"]; ok {
		lessons := Lessons{}
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &lessons); err != nil {
				return fmt.Errorf("lessons: %w", err)
			}
		}
		r.Lessons = &lessons
	}
	return nil
}

// presentString decodes a string value, null being ""
func presentString(key string, raw json.RawMessage) (string, error) {
	var s string
	if isNull(raw) {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// CreateCourseResponse is returned by a successful create
type CreateCourseResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// SuccessResponse is returned by successful update and delete calls
type SuccessResponse struct {
	Success bool `json:"success"`
}
