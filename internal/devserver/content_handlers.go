package devserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"launchpad/internal/models"
)

// CreateContent handles POST /api/v1/content. The body is multipart: text
// fields plus either a file part or a mediaUrl field.
func (s *Server) CreateContent(c *fiber.Ctx) error {
	user, ok := s.currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid multipart body")
	}

	field := func(name string) string {
		if vals := form.Value[name]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	title := field("title")
	description := field("description")
	contentType := models.ContentType(field("contentType"))

	if title == "" || description == "" {
		return respondError(c, fiber.StatusBadRequest, "Title and description are required")
	}
	if !contentType.Valid() {
		return respondError(c, fiber.StatusBadRequest, "Invalid content type")
	}

	mediaURL := field("mediaUrl")
	hasFile := len(form.File["file"]) > 0
	if !hasFile && mediaURL == "" {
		return respondError(c, fiber.StatusBadRequest, "Please provide a Media URL or upload a file.")
	}
	if hasFile && mediaURL != "" {
		return respondError(c, fiber.StatusBadRequest, "Provide either a file or a media URL, not both")
	}
	if hasFile {
		// The devserver does not persist uploads; it fabricates a URL the
		// way the real backend returns its CDN location.
		mediaURL = "http://localhost:" + s.cfg.DevServerPort + "/uploads/" + uuid.NewString() + "/" + form.File["file"][0].Filename
	}

	var platforms models.SocialPlatforms
	if raw := field("socialPlatforms"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &platforms); err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid socialPlatforms field")
		}
	}

	content := models.Content{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     description,
		ContentType:     contentType,
		MediaURL:        mediaURL,
		ThumbnailURL:    field("thumbnailUrl"),
		Hashtags:        field("hashtags"),
		Location:        field("location"),
		ScheduledDate:   field("scheduledDate"),
		IsPrivate:       field("isPrivate") == "true",
		SocialPlatforms: platforms,
		CreatorID:       user.ID,
		CreatedAt:       time.Now().UTC(),
	}
	s.store.CreateContent(content)

	return respondData(c, fiber.StatusCreated, content)
}
