package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"vtriage/internal/models"
	"vtriage/internal/shared"
)

var _ Service = (*TriageService)(nil)

// TriageService implements [Service] against the backend's REST API.
type TriageService struct {
	api *APIService
}

// NewTriageService creates a TriageService over the given raw API client.
func NewTriageService(api *APIService) *TriageService {
	return &TriageService{api: api}
}

func (s *TriageService) Name() string { return "triage" }

// InboxVideos lists videos with status inbox.
func (s *TriageService) InboxVideos(ctx context.Context, opts ListOpts) ([]models.Video, error) {
	path := "/api/videos/inbox" + listQuery(opts)

	var videos []models.Video
	if err := s.getJSON(ctx, path, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SavedVideos lists saved videos with pagination metadata.
func (s *TriageService) SavedVideos(ctx context.Context, opts ListOpts) (*models.PaginatedVideos, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.ChannelID != "" {
		q.Set("channel_youtube_id", opts.ChannelID)
	}
	if opts.SortBy != "" {
		q.Set("sort_by", opts.SortBy)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}

	path := "/api/videos/saved"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page models.PaginatedVideos
	if err := s.getJSON(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DiscardedVideos lists videos discarded within the last days days.
func (s *TriageService) DiscardedVideos(ctx context.Context, days int, opts ListOpts) ([]models.Video, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/api/videos/discarded"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var videos []models.Video
	if err := s.getJSON(ctx, path, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SaveVideo transitions a single video to saved.
func (s *TriageService) SaveVideo(ctx context.Context, id string) (*models.Video, error) {
	return s.postVideo(ctx, fmt.Sprintf("/api/videos/%s/save", id))
}

// DiscardVideo transitions a single video to discarded.
func (s *TriageService) DiscardVideo(ctx context.Context, id string) (*models.Video, error) {
	return s.postVideo(ctx, fmt.Sprintf("/api/videos/%s/discard", id))
}

// BulkSave transitions a batch of videos to saved.
func (s *TriageService) BulkSave(ctx context.Context, ids []string) ([]models.Video, error) {
	return s.bulkAction(ctx, "/api/videos/bulk-save", ids)
}

// BulkDiscard transitions a batch of videos to discarded.
func (s *TriageService) BulkDiscard(ctx context.Context, ids []string) ([]models.Video, error) {
	return s.bulkAction(ctx, "/api/videos/bulk-discard", ids)
}

// ImportVideoURLs imports pasted YouTube URLs as saved videos.
func (s *TriageService) ImportVideoURLs(ctx context.Context, urls []string) (*models.ImportResult, error) {
	body, err := json.Marshal(models.ImportURLs{URLs: urls})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result models.ImportResult
	if err := s.postJSON(ctx, "/api/import-export/import/video-urls", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ImportChannels imports channels from an export document.
func (s *TriageService) ImportChannels(ctx context.Context, channels []models.ChannelExport) (*models.ImportResult, error) {
	body, err := json.Marshal(models.ImportChannels{Channels: channels})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result models.ImportResult
	if err := s.postJSON(ctx, "/api/import-export/import/channels", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportAll fetches the full channels + saved-videos export document.
func (s *TriageService) ExportAll(ctx context.Context) (*models.ExportData, error) {
	var export models.ExportData
	if err := s.getJSON(ctx, "/api/import-export/export/all", &export); err != nil {
		return nil, err
	}
	return &export, nil
}

// PurgeDiscarded permanently deletes all discarded videos.
func (s *TriageService) PurgeDiscarded(ctx context.Context) (*models.PurgeResult, error) {
	resp, err := s.api.Delete(ctx, "/api/videos/discarded/purge-all")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result models.PurgeResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return &result, nil
}

func (s *TriageService) postVideo(ctx context.Context, path string) (*models.Video, error) {
	var video models.Video
	if err := s.postJSON(ctx, path, nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *TriageService) bulkAction(ctx context.Context, path string, ids []string) ([]models.Video, error) {
	body, err := json.Marshal(models.BulkAction{VideoIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var videos []models.Video
	if err := s.postJSON(ctx, path, body, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *TriageService) getJSON(ctx context.Context, path string, target any) error {
	resp, err := s.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, target); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

func (s *TriageService) postJSON(ctx context.Context, path string, body []byte, target any) error {
	resp, err := s.api.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	if target != nil {
		if err := json.Unmarshal(resp.Body, target); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}
	return nil
}

func checkStatus(resp *APIResponse) error {
	if resp.StatusCode == 404 {
		return fmt.Errorf("%w: status 404", shared.ErrVideoNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, truncate(resp.Body, 200))
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func listQuery(opts ListOpts) string {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.ChannelID != "" {
		q.Set("channel_id", opts.ChannelID)
	}
	if opts.IsShort != nil {
		q.Set("is_short", strconv.FormatBool(*opts.IsShort))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
