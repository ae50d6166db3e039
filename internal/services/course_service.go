package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/studyshelf/backend/internal/models"
	"go.uber.org/zap"
)

// CourseRepository is the interface that wraps methods for courses table data access
type CourseRepository interface {
	// Method GetAll retrieve every course with its lessons.
	//
	// The lessons of every returned course are never nil, even if the stored column is empty or malformed.
	GetAll(ctx context.Context) ([]models.Course, error)
	// Method GetByID retrieve a course by its identifier.
	//
	// If no course matches, models.ErrCourseNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// Method Create insert a new course.
	//
	// An already existing identifier is reported as an error.
	Create(ctx context.Context, course *models.Course) error
	// Method Update write the full course row back by its identifier.
	Update(ctx context.Context, course *models.Course) error
	// Method Delete remove a course by its identifier. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
	// Method Ping check that the store is reachable.
	Ping(ctx context.Context) error
}

// ErrCourseNotFound is returned when an update targets an unknown course
var ErrCourseNotFound = models.ErrCourseNotFound

type courseService struct {
	repo   CourseRepository
	logger *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(repo CourseRepository, logger *zap.Logger) *courseService {
	return &courseService{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves all courses
func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

// Create stores a new course and returns its identifier.
//
// The request is not validated: a missing title is accepted as is.
// If the request has no identifier, a new one is assigned.
func (s *courseService) Create(ctx context.Context, req *models.CreateCourseRequest) (string, error) {
	course := &models.Course{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Lessons:     req.Lessons,
	}
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	if course.Lessons == nil {
		course.Lessons = models.Lessons{}
	}

	if err := s.repo.Create(ctx, course); err != nil {
		s.logger.Error("failed to create course", zap.Error(err), zap.String("id", course.ID))
		return "", err
	}

	s.logger.Info("created course", zap.String("id", course.ID), zap.String("title", course.Title))
	return course.ID, nil
}

// Update merges the provided fields over the stored course and writes the result back.
//
// Fields that are nil in the request keep their stored values. Lessons are replaced as a whole.
func (s *courseService) Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("failed to load course for update", zap.Error(err), zap.String("id", id))
		return err
	}

	merged := mergeCourse(current, req)
	if err := s.repo.Update(ctx, merged); err != nil {
		s.logger.Error("failed to update course", zap.Error(err), zap.String("id", id))
		return err
	}

	s.logger.Info("updated course", zap.String("id", id))
	return nil
}

// Delete removes a course. It succeeds even if the course does not exist.
func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete course", zap.Error(err), zap.String("id", id))
		return err
	}

	s.logger.Info("deleted course", zap.String("id", id))
	return nil
}

// Health reports whether the store can be reached
func (s *courseService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// mergeCourse returns a copy of current with the present request fields applied
func mergeCourse(current *models.Course, req *models.UpdateCourseRequest) *models.Course {
	merged := *current
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Lessons != nil {
		merged.Lessons = *req.Lessons
	}
	if merged.Lessons == nil {
		merged.Lessons = models.Lessons{}
	}
	return &merged
}
