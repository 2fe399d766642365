package services

import (
	"context"

	"vtriage/internal/models"
)

// ListOpts carries the common query parameters of the backend's list endpoints.
type ListOpts struct {
	Limit     int
	Offset    int
	ChannelID string // Channel YouTube id filter
	SortBy    string // "published_at" or "saved_at" (saved list only)
	Order     string // "asc" or "desc"
	IsShort   *bool  // nil = all, true = Shorts only, false = regular only
}

// Service defines the operations the client needs from the triage backend.
type Service interface {
	// Name returns the service identifier for logs and error messages.
	Name() string

	// InboxVideos lists videos with status inbox, newest first.
	InboxVideos(ctx context.Context, opts ListOpts) ([]models.Video, error)

	// SavedVideos lists saved videos with pagination metadata.
	SavedVideos(ctx context.Context, opts ListOpts) (*models.PaginatedVideos, error)

	// DiscardedVideos lists videos discarded within the last days days.
	DiscardedVideos(ctx context.Context, days int, opts ListOpts) ([]models.Video, error)

	// SaveVideo transitions a single video to saved.
	SaveVideo(ctx context.Context, id string) (*models.Video, error)

	// DiscardVideo transitions a single video to discarded.
	DiscardVideo(ctx context.Context, id string) (*models.Video, error)

	// BulkSave transitions a batch of videos to saved, returning the videos
	// the backend actually updated (ids it didn't know are silently absent).
	BulkSave(ctx context.Context, ids []string) ([]models.Video, error)

	// BulkDiscard transitions a batch of videos to discarded.
	BulkDiscard(ctx context.Context, ids []string) ([]models.Video, error)

	// ImportVideoURLs imports pasted YouTube URLs as saved videos.
	ImportVideoURLs(ctx context.Context, urls []string) (*models.ImportResult, error)

	// ImportChannels imports channels from an export document.
	ImportChannels(ctx context.Context, channels []models.ChannelExport) (*models.ImportResult, error)

	// ExportAll fetches the full channels + saved-videos export document.
	ExportAll(ctx context.Context) (*models.ExportData, error)

	// PurgeDiscarded permanently deletes all discarded videos.
	PurgeDiscarded(ctx context.Context) (*models.PurgeResult, error)
}
