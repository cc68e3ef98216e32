package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"sync"

	"launchpad/internal/api"
	"launchpad/internal/models"
	"launchpad/internal/observability"
)

// Notifier surfaces submission outcome messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Pipeline turns a draft into a create request and submits it through the
// gateway.
type Pipeline struct {
	api    *api.Client
	notify Notifier
	logger *observability.Logger

	mu   sync.Mutex
	busy bool
}

// NewPipeline builds a submission pipeline over the given gateway.
func NewPipeline(client *api.Client, notify Notifier) *Pipeline {
	return &Pipeline{
		api:    client,
		notify: notify,
		logger: observability.GlobalLogger,
	}
}

// Busy reports whether a submission is in flight. Callers disable the submit
// control while true.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Submit validates the draft, packs it into a multipart request, and posts
// it. On success it returns the created record carrying the server-assigned
// identifier so the caller can navigate to it. On any failure the draft is
// left untouched for retry, a notification is emitted, and the error is
// re-raised so the caller can clear its pending indicator. Local validation
// failures issue no network request.
func (p *Pipeline) Submit(ctx context.Context, d *Draft) (*models.Content, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer p.end()

	ctx = observability.WithOperation(ctx, "content.submit")

	if err := d.Validate(); err != nil {
		observability.SubmissionsTotal.WithLabelValues("rejected").Inc()
		p.notify.Error(err.Error())
		return nil, err
	}

	contentType, body, err := encodeMultipart(d)
	if err != nil {
		observability.SubmissionsTotal.WithLabelValues("failure").Inc()
		p.notify.Error("Failed to create content")
		return nil, err
	}

	var created models.Content
	if err := p.api.PostMultipart(ctx, "/v1/content", contentType, body, &created); err != nil {
		observability.SubmissionsTotal.WithLabelValues("failure").Inc()
		p.notify.Error(api.ServerMessage(err, "Failed to create content"))
		return nil, err
	}

	observability.SubmissionsTotal.WithLabelValues("success").Inc()
	p.notify.Success("Content created successfully!")
	return &created, nil
}

// encodeMultipart packs the draft into a multipart form. Required fields are
// always present, optional fields only when non-empty, and the platform
// flags travel as a JSON field.
func encodeMultipart(d *Draft) (contentType string, body *bytes.Buffer, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"title":       d.Title,
		"description": d.Description,
		"contentType": string(d.ContentType),
		"isPrivate":   strconv.FormatBool(d.IsPrivate),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	optional := map[string]string{
		"hashtags":      d.Hashtags,
		"location":      d.Location,
		"scheduledDate": d.ScheduledDate,
		"thumbnailUrl":  d.ThumbnailURL,
	}
	for name, value := range optional {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return "", nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	platforms, err := json.Marshal(d.SocialPlatforms)
	if err != nil {
		return "", nil, fmt.Errorf("encode social platforms: %w", err)
	}
	if err := w.WriteField("socialPlatforms", string(platforms)); err != nil {
		return "", nil, fmt.Errorf("write field socialPlatforms: %w", err)
	}

	switch src := d.media.(type) {
	case FileSource:
		part, err := w.CreateFormFile("file", src.Name)
		if err != nil {
			return "", nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(src.Content); err != nil {
			return "", nil, fmt.Errorf("write file part: %w", err)
		}
	case URLSource:
		if err := w.WriteField("mediaUrl", string(src)); err != nil {
			return "", nil, fmt.Errorf("write field mediaUrl: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("finalize multipart body: %w", err)
	}
	return w.FormDataContentType(), body, nil
}

// begin marks a submission in flight, refusing overlap.
func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return models.NewValidationError("Another submission is already in progress")
	}
	p.busy = true
	return nil
}

func (p *Pipeline) end() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}
