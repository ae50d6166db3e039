package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studyshelf/backend/internal/models"
	"go.uber.org/zap"
)

type courseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB, logger *zap.Logger) *courseRepository {
	return &courseRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves every course with its lessons.
//
// No ordering is applied, rows come back in the order the engine returns them.
func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, title, description, lessons
		FROM courses
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query courses", zap.Error(err))
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			r.logger.Error("failed to scan course", zap.Error(err))
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT id, title, description, lessons
		FROM courses
		WHERE id = ?
	`

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCourseNotFound
		}
		r.logger.Error("failed to query course by id", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return course, nil
}

// Create inserts a new course row. A duplicate ID is reported by the engine as a constraint error.
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (id, title, description, lessons)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.Lessons,
	)
	if err != nil {
		r.logger.Error("failed to create course", zap.Error(err), zap.String("id", course.ID))
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// Update writes the full course row back
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = ?, description = ?, lessons = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.Lessons,
		course.ID,
	)
	if err != nil {
		r.logger.Error("failed to update course", zap.Error(err), zap.String("id", course.ID))
		return fmt.Errorf("failed to update course: %w", err)
	}

	return nil
}

// Delete deletes a course by ID. Deleting a missing course is not an error.
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM courses WHERE id = ?"

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete course", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

// Ping checks that the store is reachable
func (r *courseRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanCourse reads one course row. Title and description may be NULL in rows
// written by older clients, they read back as empty strings.
func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		course      models.Course
		title       sql.NullString
		description sql.NullString
	)
	if err := row.Scan(&course.ID, &title, &description, &course.Lessons); err != nil {
		return nil, err
	}
	course.Title = title.String
	course.Description = description.String
	if course.Lessons == nil {
		course.Lessons = models.Lessons{}
	}
	return &course, nil
}
