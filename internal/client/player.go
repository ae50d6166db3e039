package client

import (
	"github.com/studyshelf/backend/internal/ingest"
	"github.com/studyshelf/backend/internal/models"
)

// PlayerKind says how a lesson is rendered
type PlayerKind string

const (
	PlayerEmbed    PlayerKind = "embed"
	PlayerImage    PlayerKind = "image"
	PlayerDownload PlayerKind = "download"
)

// DefaultDownloadName is offered when a file lesson has no file name
const DefaultDownloadName = "resource"

// Player describes how to present a lesson
type Player struct {
	Kind     PlayerKind
	Source   string
	FileName string
}

// PlayerView picks the presentation for a lesson
func PlayerView(lesson models.Lesson) Player {
	if lesson.Type == models.LessonTypeYouTube {
		return Player{Kind: PlayerEmbed, Source: lesson.Content}
	}
	if ingest.IsImage(lesson.Content) {
		return Player{Kind: PlayerImage, Source: lesson.Content, FileName: lesson.FileName}
	}

	name := lesson.FileName
	if name == "" {
		name = DefaultDownloadName
	}
	return Player{Kind: PlayerDownload, Source: lesson.Content, FileName: name}
}
