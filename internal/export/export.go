// Package export writes the course snapshot as a flat CSV table, one row per lesson
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/studyshelf/backend/internal/models"
)

// DefaultFileName is used when no output path is given
const DefaultFileName = "study_db.csv"

// RedactedFileContent replaces the data URI of file lessons
const RedactedFileContent = "[File Data]"

var header = []string{"Course ID", "Course Name", "Lesson Name", "Type", "Content Link"}

// WriteCSV writes one row per lesson. Courses with no lessons produce no rows.
func WriteCSV(w io.Writer, courses []models.Course) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, course := range courses {
		for _, lesson := range course.Lessons {
			content := lesson.Content
			if lesson.Type == models.LessonTypeFile {
				content = RedactedFileContent
			}
			row := []string{course.ID, course.Title, lesson.Title, string(lesson.Type), content}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the export to path, DefaultFileName when empty
func WriteFile(path string, courses []models.Course) (string, error) {
	if path == "" {
		path = DefaultFileName
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteCSV(f, courses); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}
