package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/studyshelf/backend/internal/ids"
	"github.com/studyshelf/backend/internal/models"
	"github.com/studyshelf/backend/internal/youtube"
	"go.uber.org/zap"
)

var (
	// ErrValidation is returned before any request when required input is missing
	ErrValidation = errors.New("validation failed")
	// ErrOffline is returned for mutations while the service is unreachable
	ErrOffline = errors.New("course service is offline")
	// ErrCourseNotFound is returned when the course is not in the snapshot
	ErrCourseNotFound = errors.New("course not found")
	// ErrLessonNotFound is returned when the lesson is not in the course
	ErrLessonNotFound = errors.New("lesson not found")
)

// API is the set of course endpoints the store needs
type API interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, req models.CreateCourseRequest) (string, error)
	UpdateCourse(ctx context.Context, id string, req models.UpdateCourseRequest) error
	DeleteCourse(ctx context.Context, id string) error
}

// LessonInput holds the user-editable fields of a lesson
type LessonInput struct {
	Title    string            `validate:"required"`
	Type     models.LessonType `validate:"required,oneof=youtube file"`
	Content  string            `validate:"required"`
	FileName string
}

// Store holds the full course snapshot. Every view is derived from it and
// every mutation is followed by a full re-fetch.
type Store struct {
	api    API
	origin string
	logger *zap.Logger

	mu        sync.RWMutex
	courses   []models.Course
	connected bool
	loading   bool
}

// NewStore creates a store. origin is passed to YouTube embed URLs.
// The store counts as connected until a fetch fails.
func NewStore(api API, origin string, logger *zap.Logger) *Store {
	return &Store{
		api:     api,
		origin:  origin,
		logger:  logger,
		courses:   []models.Course{},
		connected: true,
		loading:   true,
	}
}

// Refresh replaces the snapshot with the service's course list.
// On failure the previous snapshot is kept and the store is marked disconnected.
func (s *Store) Refresh(ctx context.Context) error {
	courses, err := s.api.ListCourses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.connected = false
		s.logger.Warn("Failed to fetch courses", zap.Error(err))
		return fmt.Errorf("failed to fetch courses: %w", err)
	}

	s.courses = courses
	s.connected = true
	return nil
}

// Connected reports whether the last fetch succeeded
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Loading reports whether no fetch has completed yet
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Courses returns a copy of the course list
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Course, len(s.courses))
	for i, c := range s.courses {
		out[i] = cloneCourse(c)
	}
	return out
}

// Course returns the course with id from the snapshot
func (s *Store) Course(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.find(id)
	if !ok {
		return models.Course{}, false
	}
	return cloneCourse(c), true
}

// Lesson returns one lesson of a course from the snapshot
func (s *Store) Lesson(courseID, lessonID string) (models.Lesson, bool) {
	c, ok := s.Course(courseID)
	if !ok {
		return models.Lesson{}, false
	}
	idx := slices.IndexFunc(c.Lessons, func(l models.Lesson) bool { return l.ID == lessonID })
	if idx < 0 {
		return models.Lesson{}, false
	}
	return c.Lessons[idx], true
}

// CreateCourse creates an empty course and returns its id
func (s *Store) CreateCourse(ctx context.Context, title, description string) (string, error) {
	if err := validateInput(courseInput{Title: title}); err != nil {
		return "", err
	}
	if !s.Connected() {
		return "", ErrOffline
	}

	id := ids.New()
	_, err := s.api.CreateCourse(ctx, models.CreateCourseRequest{
		ID:          id,
		Title:       title,
		Description: description,
		Lessons:     models.Lessons{},
	})
	s.refreshAfter(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create course: %w", err)
	}
	return id, nil
}

// UpdateCourse changes the title and description of a course
func (s *Store) UpdateCourse(ctx context.Context, id, title, description string) error {
	if err := validateInput(courseInput{Title: title}); err != nil {
		return err
	}
	if !s.Connected() {
		return ErrOffline
	}

	err := s.api.UpdateCourse(ctx, id, models.UpdateCourseRequest{
		Title:       &title,
		Description: &description,
	})
	s.refreshAfter(ctx)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course and its lessons
func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	if !s.Connected() {
		return ErrOffline
	}

	err := s.api.DeleteCourse(ctx, id)
	s.refreshAfter(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// AddLesson appends a lesson to a course and returns the lesson id
func (s *Store) AddLesson(ctx context.Context, courseID string, in LessonInput) (string, error) {
	lesson, err := s.buildLesson(in)
	if err != nil {
		return "", err
	}
	lesson.ID = ids.New()

	err = s.replaceLessons(ctx, courseID, func(lessons models.Lessons) (models.Lessons, error) {
		return append(lessons, lesson), nil
	})
	if err != nil {
		return "", err
	}
	return lesson.ID, nil
}

// EditLesson replaces a lesson in place, keeping its id and position
func (s *Store) EditLesson(ctx context.Context, courseID, lessonID string, in LessonInput) error {
	lesson, err := s.buildLesson(in)
	if err != nil {
		return err
	}
	lesson.ID = lessonID

	return s.replaceLessons(ctx, courseID, func(lessons models.Lessons) (models.Lessons, error) {
		idx := slices.IndexFunc(lessons, func(l models.Lesson) bool { return l.ID == lessonID })
		if idx < 0 {
			return nil, ErrLessonNotFound
		}
		lessons[idx] = lesson
		return lessons, nil
	})
}

// DeleteLesson removes a lesson from a course
func (s *Store) DeleteLesson(ctx context.Context, courseID, lessonID string) error {
	return s.replaceLessons(ctx, courseID, func(lessons models.Lessons) (models.Lessons, error) {
		return slices.DeleteFunc(lessons, func(l models.Lesson) bool { return l.ID == lessonID }), nil
	})
}

func (s *Store) buildLesson(in LessonInput) (models.Lesson, error) {
	if err := validateInput(in); err != nil {
		return models.Lesson{}, err
	}

	lesson := models.Lesson{
		Title:   in.Title,
		Type:    in.Type,
		Content: in.Content,
	}
	switch in.Type {
	case models.LessonTypeYouTube:
		lesson.Content = youtube.Normalize(in.Content, s.origin)
	case models.LessonTypeFile:
		lesson.FileName = in.FileName
	}
	return lesson, nil
}

// replaceLessons transforms the snapshot's lesson sequence of a course and
// sends the whole new sequence back
func (s *Store) replaceLessons(ctx context.Context, courseID string, transform func(models.Lessons) (models.Lessons, error)) error {
	if !s.Connected() {
		return ErrOffline
	}

	course, ok := s.Course(courseID)
	if !ok {
		return ErrCourseNotFound
	}

	lessons, err := transform(course.Lessons)
	if err != nil {
		return err
	}
	if lessons == nil {
		lessons = models.Lessons{}
	}

	err = s.api.UpdateCourse(ctx, courseID, models.UpdateCourseRequest{Lessons: &lessons})
	s.refreshAfter(ctx)
	if err != nil {
		return fmt.Errorf("failed to save lessons: %w", err)
	}
	return nil
}

// refreshAfter re-fetches after a mutation whether or not it succeeded.
// A failed fetch only shows up through Connected.
func (s *Store) refreshAfter(ctx context.Context) {
	_ = s.Refresh(ctx)
}

func (s *Store) find(id string) (models.Course, bool) {
	idx := slices.IndexFunc(s.courses, func(c models.Course) bool { return c.ID == id })
	if idx < 0 {
		return models.Course{}, false
	}
	return s.courses[idx], true
}

func cloneCourse(c models.Course) models.Course {
	c.Lessons = slices.Clone(c.Lessons)
	if c.Lessons == nil {
		c.Lessons = models.Lessons{}
	}
	return c
}
