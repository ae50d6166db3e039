// Package ingest turns local files into self-contained data URIs stored as lesson content
package ingest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the largest file accepted for a lesson
const MaxFileSize = 10 * 1024 * 1024 // 10MB

const defaultMIME = "application/octet-stream"

var (
	// ErrFileTooLarge is returned for files above MaxFileSize
	ErrFileTooLarge = errors.New("file too large (max 10MB)")
	// ErrInvalidDataURI is returned when content is not a data URI
	ErrInvalidDataURI = errors.New("invalid data URI")
)

// File is an ingested file ready to be stored in a lesson
type File struct {
	Name    string
	MIME    string
	Size    int64
	DataURI string
}

// EncodeFile reads the file at path and encodes it.
// Oversized files are rejected from their metadata, before any content is read.
func EncodeFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Encode(filepath.Base(path), f, info.Size())
}

// Encode reads r fully and encodes it as a data URI.
//
// size is the declared size, a negative value means unknown. The content is never read past MaxFileSize.
func Encode(name string, r io.Reader, size int64) (*File, error) {
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	mimeType := detectMIME(name, data)
	return &File{
		Name:    name,
		MIME:    mimeType,
		Size:    int64(len(data)),
		DataURI: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// detectMIME sniffs the content first, then falls back to the file extension
func detectMIME(name string, data []byte) string {
	detected := mimetype.Detect(data)
	if !detected.Is(defaultMIME) {
		return baseType(detected.String())
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return baseType(byExt)
	}
	return defaultMIME
}

// baseType drops media type parameters such as charset
func baseType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(base)
}

// Decode splits a data URI into its media type and payload bytes
func Decode(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}

	mediaType := header
	isBase64 := false
	if before, found := strings.CutSuffix(header, ";base64"); found {
		mediaType = before
		isBase64 = true
	}
	mediaType = baseType(mediaType)
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		return mediaType, data, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mediaType, []byte(unescaped), nil
}

// IsImage reports whether content is a data URI holding an image
func IsImage(content string) bool {
	return strings.HasPrefix(content, "data:image")
}

// SaveTo decodes dataURI and writes its payload to path
func SaveTo(dataURI, path string) error {
	_, data, err := Decode(dataURI)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

