package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LessonType represents the kind of content a lesson carries
type LessonType string

const (
	LessonTypeYouTube LessonType = "youtube"
	LessonTypeFile    LessonType = "file"
)

// Lesson represents a single lesson inside a course
type Lesson struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Type     LessonType `json:"type"`
	Content  string     `json:"content"`
	FileName string     `json:"fileName,omitempty"`
}

// Lessons is the ordered lesson sequence of a course.
//
// It is stored as a single JSON text column. Reading never yields nil: NULL, empty,
// malformed or non-array values all become an empty sequence.
type Lessons []Lesson

// MarshalJSON always encodes a sequence, never null
func (l Lessons) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Lesson(l))
}

// UnmarshalJSON decodes a sequence, treating null as empty
func (l *Lessons) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Lessons{}
		return nil
	}
	var items []Lesson
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = []Lesson{}
	}
	*l = items
	return nil
}

// Value implements driver.Valuer, serializing the sequence to JSON text
func (l Lessons) Value() (driver.Value, error) {
	data, err := l.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize lessons: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner. It never fails on bad column content.
func (l *Lessons) Scan(src any) error {
	*l = ParseLessons(src)
	return nil
}

// ParseLessons converts a raw column value into a lesson sequence
func ParseLessons(src any) Lessons {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return Lessons{}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Lessons{}
	}

	var items []Lesson
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return Lessons{}
	}
	return items
}
