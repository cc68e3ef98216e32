// Package models defines the wire-level data types shared by the client
// library and the local development server.
package models

import "time"

// SocialLinks holds optional profile links to external platforms.
type SocialLinks struct {
	YouTube   string `json:"youtube,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// User is the account representation returned by the platform API.
// Field names follow the wire contract (camelCase JSON).
type User struct {
	ID               string       `json:"id"`
	Username         string       `json:"username"`
	Email            string       `json:"email"`
	FullName         string       `json:"fullName"`
	Role             string       `json:"role,omitempty"`
	Avatar           string       `json:"avatar,omitempty"`
	Bio              string       `json:"bio,omitempty"`
	Location         string       `json:"location,omitempty"`
	Website          string       `json:"website,omitempty"`
	SocialLinks      *SocialLinks `json:"socialLinks,omitempty"`
	YouTubeConnected bool         `json:"youtubeConnected"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// ProfileUpdate carries the mutable profile fields for PUT /auth/profile.
// Only non-nil fields are sent; the server returns the full updated user.
type ProfileUpdate struct {
	FullName    *string      `json:"fullName,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}
