package content

import (
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"mime"
	"path/filepath"

	_ "golang.org/x/image/webp"
)

// ThumbnailPlaceholder is shown when the thumbnail URL cannot be fetched or
// decoded as an image.
const ThumbnailPlaceholder = "https://via.placeholder.com/400x200?text=Invalid+Image"

// PreviewKind says how the preview source should be rendered.
type PreviewKind string

const (
	PreviewVideo PreviewKind = "video"
	PreviewImage PreviewKind = "image"
)

// Preview is a renderable media preview for the draft's active source.
type Preview struct {
	Source string
	Kind   PreviewKind
}

// Preview derives the live preview from the draft's media source. A staged
// file is embedded as a data URI so it renders without waiting for upload; a
// URL renders directly. ok is false when no source is set, which clears the
// preview. The result tracks the draft reactively because it is recomputed
// on every call rather than cached.
func (d *Draft) Preview() (Preview, bool) {
	kind := PreviewImage
	if d.ContentType.IsVideo() {
		kind = PreviewVideo
	}

	switch src := d.media.(type) {
	case FileSource:
		contentType := mime.TypeByExtension(filepath.Ext(src.Name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		uri := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(src.Content)
		return Preview{Source: uri, Kind: kind}, true
	case URLSource:
		return Preview{Source: string(src), Kind: kind}, true
	}
	return Preview{}, false
}

// ThumbnailPreview resolves the draft's thumbnail URL to a displayable
// source. It tracks only the thumbnail field, independent of the main media
// preview. A fetch failure, non-2xx status, or undecodable image falls back
// to the placeholder; nothing here is fatal. An empty thumbnail URL yields
// an empty preview.
func (p *Pipeline) ThumbnailPreview(ctx context.Context, d *Draft) string {
	if d.ThumbnailURL == "" {
		return ""
	}

	resp, err := p.api.FetchRaw(ctx, d.ThumbnailURL)
	if err != nil {
		p.logger.DebugContext(ctx, "thumbnail fetch failed", slog.String("error", err.Error()))
		return ThumbnailPlaceholder
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ThumbnailPlaceholder
	}
	if _, _, err := image.DecodeConfig(resp.Body); err != nil {
		p.logger.DebugContext(ctx, "thumbnail decode failed", slog.String("error", err.Error()))
		return ThumbnailPlaceholder
	}
	return d.ThumbnailURL
}
