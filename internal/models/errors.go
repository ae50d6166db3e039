package models

import "errors"

// ErrCourseNotFound is returned when no course matches the requested identifier
var ErrCourseNotFound = errors.New("course not found")
