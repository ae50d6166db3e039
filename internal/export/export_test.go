package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyshelf/backend/internal/models"
)

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		courses  []models.Course
		expected string
	}{
		{
			name:     "no courses writes only the header",
			courses:  nil,
			expected: "Course ID,Course Name,Lesson Name,Type,Content Link\n",
		},
		{
			name: "course without lessons produces no rows",
			courses: []models.Course{
				{ID: "c1", Title: "Empty", Lessons: models.Lessons{}},
			},
			expected: "Course ID,Course Name,Lesson Name,Type,Content Link\n",
		},
		{
			name: "file content is redacted",
			courses: []models.Course{
				{
					ID:    "c1",
					Title: "Go",
					Lessons: models.Lessons{
						{ID: "l1", Title: "Intro", Type: models.LessonTypeYouTube, Content: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
						{ID: "l2", Title: "Slides", Type: models.LessonTypeFile, Content: "data:application/pdf;base64,AAAA", FileName: "slides.pdf"},
					},
				},
			},
			expected: "Course ID,Course Name,Lesson Name,Type,Content Link\n" +
				"c1,Go,Intro,youtube,https://www.youtube.com/embed/dQw4w9WgXcQ\n" +
				"c1,Go,Slides,file,[File Data]\n",
		},
		{
			name: "fields with commas are quoted",
			courses: []models.Course{
				{
					ID:    "c2",
					Title: "Tea, history",
					Lessons: models.Lessons{
						{ID: "l1", Title: "Part \"one\"", Type: models.LessonTypeYouTube, Content: "x"},
					},
				},
			},
			expected: "Course ID,Course Name,Lesson Name,Type,Content Link\n" +
				"c2,\"Tea, history\",\"Part \"\"one\"\"\",youtube,x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := WriteCSV(&buf, tt.courses)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	courses := []models.Course{
		{ID: "c1", Title: "Go", Lessons: models.Lessons{
			{ID: "l1", Title: "Doc", Type: models.LessonTypeFile, Content: "data:text/plain;base64,aGk="},
		}},
	}

	written, err := WriteFile(path, courses)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "c1,Go,Doc,file,[File Data]")
	assert.NotContains(t, string(data), "base64")
}

func TestWriteFile_DefaultName(t *testing.T) {
	t.Chdir(t.TempDir())

	written, err := WriteFile("", nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, written)
	_, err = os.Stat(DefaultFileName)
	assert.NoError(t, err)
}
