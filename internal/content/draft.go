// Package content implements the submission pipeline: draft state, media
// source handling, previews, and the multipart create request.
package content

import (
	"fmt"
	"unicode/utf8"

	"launchpad/internal/models"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// MediaSource is the draft's effective media origin. Exactly one source is
// active at a time; the tagged union enforces file/URL mutual exclusion
// structurally instead of through two nullable fields.
type MediaSource interface {
	isMediaSource()
}

// FileSource is a locally staged file.
type FileSource struct {
	Name    string
	Content []byte
}

func (FileSource) isMediaSource() {}

// URLSource is a remote media URL.
type URLSource string

func (URLSource) isMediaSource() {}

// Draft is the transient create-content form state. It exists only for the
// duration of a form session and is preserved across failed submissions so
// the user can retry without re-entering data.
type Draft struct {
	Title           string
	Description     string
	ContentType     models.ContentType
	ThumbnailURL    string
	Hashtags        string
	Location        string
	ScheduledDate   string
	IsPrivate       bool
	SocialPlatforms models.SocialPlatforms

	media MediaSource
}

// NewDraft returns a draft with the form's initial defaults.
func NewDraft() *Draft {
	return &Draft{
		ContentType: models.ContentTypeTeaser,
		SocialPlatforms: models.SocialPlatforms{
			YouTube:   true,
			Instagram: true,
			Twitter:   false,
		},
	}
}

// StageFile stages a local file as the exclusive media source. Any
// previously entered URL is discarded; SetMediaURL is refused until the file
// is removed.
func (d *Draft) StageFile(name string, content []byte) {
	d.media = FileSource{Name: name, Content: content}
}

// RemoveFile unstages the local file, re-enabling URL entry. The draft is
// left with no media source; a no-op when no file is staged.
func (d *Draft) RemoveFile() {
	if _, ok := d.media.(FileSource); ok {
		d.media = nil
	}
}

// SetMediaURL sets the remote media URL. Refused while a file is staged.
// Setting the empty string clears the URL source; while a file is staged,
// clearing is a harmless no-op.
func (d *Draft) SetMediaURL(url string) error {
	if _, ok := d.media.(FileSource); ok {
		if url == "" {
			return nil
		}
		return models.NewValidationError("Remove the staged file before entering a media URL")
	}
	if url == "" {
		d.media = nil
		return nil
	}
	d.media = URLSource(url)
	return nil
}

// Media returns the active media source, or nil when none is set.
func (d *Draft) Media() MediaSource {
	return d.media
}

// MediaURL returns the URL source, or "" when a file is staged or no source
// is set.
func (d *Draft) MediaURL() string {
	if url, ok := d.media.(URLSource); ok {
		return string(url)
	}
	return ""
}

// StagedFile returns the staged file source, or nil.
func (d *Draft) StagedFile() *FileSource {
	if f, ok := d.media.(FileSource); ok {
		return &f
	}
	return nil
}

// FileStaged reports whether a local file is the active source, meaning URL
// entry is disabled.
func (d *Draft) FileStaged() bool {
	_, ok := d.media.(FileSource)
	return ok
}

// Validate checks the draft locally. Any error here blocks submission
// before the network is touched.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(d.Title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title must be %d characters or less", maxTitleLen))
	}
	if d.Description == "" {
		return models.NewValidationError("Description is required")
	}
	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		return models.NewValidationError(fmt.Sprintf("Description must be %d characters or less", maxDescriptionLen))
	}
	if !d.ContentType.Valid() {
		return models.NewValidationError(fmt.Sprintf("Unknown content type %q", d.ContentType))
	}
	if d.media == nil {
		return models.NewValidationError("Please provide a Media URL or upload a file.")
	}
	return nil
}
