// package models defines the data model for the vtriage client
package models

import (
	"fmt"
	"time"
)

// Video statuses used by the triage backend.
const (
	StatusInbox     = "inbox"
	StatusSaved     = "saved"
	StatusDiscarded = "discarded"
)

// Video represents a video as returned by the triage backend.
type Video struct {
	ID                  string     `json:"id"`
	YouTubeVideoID      string     `json:"youtube_video_id"`
	ChannelID           *string    `json:"channel_id"`
	ChannelYouTubeID    *string    `json:"channel_youtube_id"`
	ChannelName         *string    `json:"channel_name"`
	ChannelThumbnailURL *string    `json:"channel_thumbnail_url"`
	Title               string     `json:"title"`
	Description         *string    `json:"description"`
	ThumbnailURL        *string    `json:"thumbnail_url"`
	VideoURL            string     `json:"video_url"`
	PublishedAt         *time.Time `json:"published_at"`
	Status              string     `json:"status"`
	SavedAt             *time.Time `json:"saved_at"`
	DiscardedAt         *time.Time `json:"discarded_at"`
	IsShort             bool       `json:"is_short"`
}

// Channel returns the display name of the video's channel, or a placeholder.
func (v Video) Channel() string {
	if v.ChannelName != nil && *v.ChannelName != "" {
		return *v.ChannelName
	}
	return "Unknown Channel"
}

// PaginatedVideos is the envelope returned by the backend's paginated list endpoints.
type PaginatedVideos struct {
	Videos  []Video `json:"videos"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	HasMore bool    `json:"has_more"`
}

// Channel represents a subscribed channel.
type Channel struct {
	ID               string  `json:"id"`
	YouTubeChannelID string  `json:"youtube_channel_id"`
	Name             string  `json:"name"`
	YouTubeURL       *string `json:"youtube_url"`
	ThumbnailURL     *string `json:"thumbnail_url"`
}

// BulkAction is the request body for the backend's bulk-save/bulk-discard endpoints.
type BulkAction struct {
	VideoIDs []string `json:"video_ids"`
}

// ImportURLs is the request body for importing videos from pasted URLs.
type ImportURLs struct {
	URLs []string `json:"urls"`
}

// ImportChannels is the request body for importing channels from an export document.
type ImportChannels struct {
	Channels []ChannelExport `json:"channels"`
}

// ImportResult is the aggregate returned by the backend's import endpoints.
type ImportResult struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ChannelExport mirrors one channel entry in an export document.
type ChannelExport struct {
	YouTubeChannelID string  `json:"youtube_channel_id"`
	Name             string  `json:"name"`
	YouTubeURL       *string `json:"youtube_url"`
}

// VideoExport mirrors one saved-video entry in an export document.
type VideoExport struct {
	YouTubeVideoID   string     `json:"youtube_video_id"`
	Title            string     `json:"title"`
	VideoURL         string     `json:"video_url"`
	ChannelYouTubeID *string    `json:"channel_youtube_id"`
	ChannelName      *string    `json:"channel_name"`
	SavedAt          *time.Time `json:"saved_at"`
	PublishedAt      *time.Time `json:"published_at"`
}

// ExportData is the document produced by the backend's export endpoints.
type ExportData struct {
	Version     string          `json:"version"`
	ExportedAt  time.Time       `json:"exported_at"`
	Channels    []ChannelExport `json:"channels"`
	SavedVideos []VideoExport   `json:"saved_videos"`
}

// PurgeResult is returned when permanently deleting discarded videos.
type PurgeResult struct {
	DeletedCount int    `json:"deleted_count"`
	Message      string `json:"message"`
}

// CachedVideo is a row in the local SQLite mirror of fetched videos.
type CachedVideo struct {
	ID               string
	YouTubeVideoID   string
	ChannelYouTubeID string
	ChannelName      string
	Title            string
	ThumbnailURL     string
	VideoURL         string
	PublishedAt      *time.Time
	Status           string
	SavedAt          *time.Time
	DiscardedAt      *time.Time
	IsShort          bool
	FetchedAt        time.Time
}

// Validate checks that the cached row carries the fields the cache indexes on.
func (c *CachedVideo) Validate() error {
	if c.YouTubeVideoID == "" {
		return fmt.Errorf("cached video missing youtube_video_id")
	}
	if c.Title == "" {
		return fmt.Errorf("cached video missing title")
	}
	switch c.Status {
	case StatusInbox, StatusSaved, StatusDiscarded:
	default:
		return fmt.Errorf("cached video has unknown status %q", c.Status)
	}
	return nil
}

// FromVideo converts an API video into a cache row stamped with now.
func FromVideo(v Video, now time.Time) CachedVideo {
	c := CachedVideo{
		ID:             v.ID,
		YouTubeVideoID: v.YouTubeVideoID,
		Title:          v.Title,
		VideoURL:       v.VideoURL,
		PublishedAt:    v.PublishedAt,
		Status:         v.Status,
		SavedAt:        v.SavedAt,
		DiscardedAt:    v.DiscardedAt,
		IsShort:        v.IsShort,
		FetchedAt:      now,
	}
	if v.ChannelYouTubeID != nil {
		c.ChannelYouTubeID = *v.ChannelYouTubeID
	}
	if v.ChannelName != nil {
		c.ChannelName = *v.ChannelName
	}
	if v.ThumbnailURL != nil {
		c.ThumbnailURL = *v.ThumbnailURL
	}
	return c
}
