package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyshelf/backend/internal/models"
)

func TestPlayerView(t *testing.T) {
	tests := []struct {
		name     string
		lesson   models.Lesson
		expected Player
	}{
		{
			name:     "youtube embeds",
			lesson:   models.Lesson{Type: models.LessonTypeYouTube, Content: "https://www.youtube.com/embed/x"},
			expected: Player{Kind: PlayerEmbed, Source: "https://www.youtube.com/embed/x"},
		},
		{
			name:     "image file is shown inline",
			lesson:   models.Lesson{Type: models.LessonTypeFile, Content: "data:image/png;base64,AAAA", FileName: "a.png"},
			expected: Player{Kind: PlayerImage, Source: "data:image/png;base64,AAAA", FileName: "a.png"},
		},
		{
			name:     "other file is downloaded by name",
			lesson:   models.Lesson{Type: models.LessonTypeFile, Content: "data:application/pdf;base64,AAAA", FileName: "notes.pdf"},
			expected: Player{Kind: PlayerDownload, Source: "data:application/pdf;base64,AAAA", FileName: "notes.pdf"},
		},
		{
			name:     "file without name",
			lesson:   models.Lesson{Type: models.LessonTypeFile, Content: "data:application/pdf;base64,AAAA"},
			expected: Player{Kind: PlayerDownload, Source: "data:application/pdf;base64,AAAA", FileName: "resource"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlayerView(tt.lesson))
		})
	}
}
