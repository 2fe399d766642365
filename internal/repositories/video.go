package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"vtriage/internal/models"
	"vtriage/internal/shared"
)

// VideoRepository persists [models.CachedVideo] rows in the local SQLite cache.
//
// Rows are keyed by the backend's video id and deduplicated on the YouTube
// video id, so re-fetching a listing refreshes rows in place.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Upsert inserts a cached video or refreshes the existing row for the same
// YouTube video id.
func (r *VideoRepository) Upsert(video *models.CachedVideo) error {
	if video.ID == "" {
		video.ID = shared.GenerateID()
	}

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (id, youtube_video_id, channel_youtube_id, channel_name, title, thumbnail_url, video_url, published_at, status, saved_at, discarded_at, is_short, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(youtube_video_id) DO UPDATE SET
			channel_youtube_id = excluded.channel_youtube_id,
			channel_name = excluded.channel_name,
			title = excluded.title,
			thumbnail_url = excluded.thumbnail_url,
			video_url = excluded.video_url,
			published_at = excluded.published_at,
			status = excluded.status,
			saved_at = excluded.saved_at,
			discarded_at = excluded.discarded_at,
			is_short = excluded.is_short,
			fetched_at = excluded.fetched_at
	`

	_, err := r.db.Exec(query,
		video.ID,
		video.YouTubeVideoID,
		video.ChannelYouTubeID,
		video.ChannelName,
		video.Title,
		video.ThumbnailURL,
		video.VideoURL,
		video.PublishedAt,
		video.Status,
		video.SavedAt,
		video.DiscardedAt,
		video.IsShort,
		video.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert video: %w", err)
	}

	return nil
}

// UpsertAll caches a page of API videos in one transaction, stamping each row
// with now. Returns the number of rows written.
func (r *VideoRepository) UpsertAll(videos []models.Video, now time.Time) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO videos (id, youtube_video_id, channel_youtube_id, channel_name, title, thumbnail_url, video_url, published_at, status, saved_at, discarded_at, is_short, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(youtube_video_id) DO UPDATE SET
			channel_youtube_id = excluded.channel_youtube_id,
			channel_name = excluded.channel_name,
			title = excluded.title,
			thumbnail_url = excluded.thumbnail_url,
			video_url = excluded.video_url,
			published_at = excluded.published_at,
			status = excluded.status,
			saved_at = excluded.saved_at,
			discarded_at = excluded.discarded_at,
			is_short = excluded.is_short,
			fetched_at = excluded.fetched_at
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, v := range videos {
		row := models.FromVideo(v, now)
		if row.ID == "" {
			row.ID = shared.GenerateID()
		}
		if err := row.Validate(); err != nil {
			return written, fmt.Errorf("validation failed for %s: %w", row.YouTubeVideoID, err)
		}

		_, err := stmt.Exec(
			row.ID,
			row.YouTubeVideoID,
			row.ChannelYouTubeID,
			row.ChannelName,
			row.Title,
			row.ThumbnailURL,
			row.VideoURL,
			row.PublishedAt,
			row.Status,
			row.SavedAt,
			row.DiscardedAt,
			row.IsShort,
			row.FetchedAt,
		)
		if err != nil {
			return written, fmt.Errorf("failed to upsert video %s: %w", row.YouTubeVideoID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("failed to commit upsert transaction: %w", err)
	}

	return written, nil
}

// Get retrieves a cached video by its backend id
func (r *VideoRepository) Get(id string) (*models.CachedVideo, error) {
	query := `
		SELECT id, youtube_video_id, channel_youtube_id, channel_name, title, thumbnail_url, video_url, published_at, status, saved_at, discarded_at, is_short, fetched_at
		FROM videos
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByYouTubeID retrieves a cached video by its YouTube video id
func (r *VideoRepository) GetByYouTubeID(youtubeVideoID string) (*models.CachedVideo, error) {
	query := `
		SELECT id, youtube_video_id, channel_youtube_id, channel_name, title, thumbnail_url, video_url, published_at, status, saved_at, discarded_at, is_short, fetched_at
		FROM videos
		WHERE youtube_video_id = ?
	`

	return r.scanOne(r.db.QueryRow(query, youtubeVideoID))
}

// ListByStatus retrieves cached videos in the given triage status, newest
// publication first. A limit of 0 returns all matching rows.
func (r *VideoRepository) ListByStatus(status string, limit, offset int) ([]models.CachedVideo, error) {
	query := `
		SELECT id, youtube_video_id, channel_youtube_id, channel_name, title, thumbnail_url, video_url, published_at, status, saved_at, discarded_at, is_short, fetched_at
		FROM videos
		WHERE status = ?
		ORDER BY published_at DESC, youtube_video_id ASC
	`

	args := []any{status}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.CachedVideo
	for rows.Next() {
		video, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// SetStatus moves the given backend video ids to a new triage status,
// stamping saved_at or discarded_at as appropriate. Unknown ids are ignored;
// the count of rows actually updated is returned.
func (r *VideoRepository) SetStatus(ids []string, status string, at time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var query string
	switch status {
	case models.StatusSaved:
		query = "UPDATE videos SET status = ?, saved_at = ?, discarded_at = NULL WHERE id = ?"
	case models.StatusDiscarded:
		query = "UPDATE videos SET status = ?, discarded_at = ? WHERE id = ?"
	case models.StatusInbox:
		query = "UPDATE videos SET status = ?, fetched_at = ? WHERE id = ?"
	default:
		return 0, fmt.Errorf("unknown status %q", status)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updated := 0
	for _, id := range ids {
		result, err := tx.Exec(query, status, at, id)
		if err != nil {
			return 0, fmt.Errorf("failed to update video %s: %w", id, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}
		updated += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit status transaction: %w", err)
	}

	return updated, nil
}

// DeleteDiscarded permanently removes all discarded rows from the cache,
// mirroring the backend's purge endpoint. Returns the number of rows deleted.
func (r *VideoRepository) DeleteDiscarded() (int, error) {
	result, err := r.db.Exec("DELETE FROM videos WHERE status = ?", models.StatusDiscarded)
	if err != nil {
		return 0, fmt.Errorf("failed to purge discarded videos: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// CountByStatus returns the number of cached rows in the given status.
func (r *VideoRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM videos WHERE status = ?", status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

// scanOne scans a single [sql.Row] into a [models.CachedVideo]
func (r *VideoRepository) scanOne(row *sql.Row) (*models.CachedVideo, error) {
	video, err := scanVideo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: not in local cache", shared.ErrVideoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}
	return video, nil
}

// scanRow scans a row from [sql.Rows] into a [models.CachedVideo]
func (r *VideoRepository) scanRow(rows *sql.Rows) (*models.CachedVideo, error) {
	video, err := scanVideo(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}
	return video, nil
}

func scanVideo(scan func(dest ...any) error) (*models.CachedVideo, error) {
	var (
		video       models.CachedVideo
		channelYTID sql.NullString
		channelName sql.NullString
		thumbnail   sql.NullString
		videoURL    sql.NullString
		publishedAt sql.NullTime
		savedAt     sql.NullTime
		discardedAt sql.NullTime
	)

	err := scan(
		&video.ID,
		&video.YouTubeVideoID,
		&channelYTID,
		&channelName,
		&video.Title,
		&thumbnail,
		&videoURL,
		&publishedAt,
		&video.Status,
		&savedAt,
		&discardedAt,
		&video.IsShort,
		&video.FetchedAt,
	)
	if err != nil {
		return nil, err
	}

	video.ChannelYouTubeID = channelYTID.String
	video.ChannelName = channelName.String
	video.ThumbnailURL = thumbnail.String
	video.VideoURL = videoURL.String
	if publishedAt.Valid {
		video.PublishedAt = &publishedAt.Time
	}
	if savedAt.Valid {
		video.SavedAt = &savedAt.Time
	}
	if discardedAt.Valid {
		video.DiscardedAt = &discardedAt.Time
	}

	return &video, nil
}
