package models

import "time"

// ContentType classifies a content item.
type ContentType string

const (
	ContentTypeTeaser  ContentType = "teaser"
	ContentTypeTrailer ContentType = "trailer"
	ContentTypePoster  ContentType = "poster"
	ContentTypeVideo   ContentType = "video"
	ContentTypeImage   ContentType = "image"
)

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeTeaser, ContentTypeTrailer, ContentTypePoster, ContentTypeVideo, ContentTypeImage:
		return true
	}
	return false
}

// IsVideo reports whether content of this type renders as a video element.
// Posters and images render as image elements.
func (t ContentType) IsVideo() bool {
	switch t {
	case ContentTypeTeaser, ContentTypeTrailer, ContentTypeVideo:
		return true
	}
	return false
}

// SocialPlatforms carries per-platform auto-publish intent flags. The flags
// are independent of whether the account is actually connected to the
// platform.
type SocialPlatforms struct {
	YouTube   bool `json:"youtube"`
	Instagram bool `json:"instagram"`
	Twitter   bool `json:"twitter"`
}

// Content is a created content record as returned by POST /v1/content.
type Content struct {
	ID              string          `json:"_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ContentType     ContentType     `json:"contentType"`
	MediaURL        string          `json:"mediaUrl,omitempty"`
	ThumbnailURL    string          `json:"thumbnailUrl,omitempty"`
	Hashtags        string          `json:"hashtags,omitempty"`
	Location        string          `json:"location,omitempty"`
	ScheduledDate   string          `json:"scheduledDate,omitempty"`
	IsPrivate       bool            `json:"isPrivate"`
	SocialPlatforms SocialPlatforms `json:"socialPlatforms"`
	CreatorID       string          `json:"creatorId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
