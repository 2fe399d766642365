package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"vtriage/internal/models"
	"vtriage/internal/repositories"
	"vtriage/internal/services"
	"vtriage/internal/shared"
)

// openCache opens the local cache database from the runner's config and
// ensures the schema is current.
func (r *Runner) openCache() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return db, nil
}

// CacheSync mirrors the backend's listings into the local cache so they stay
// browsable offline.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewVideoRepository(db)
	now := time.Now()
	total := 0

	inbox, err := r.svc.InboxVideos(ctx, services.ListOpts{})
	if err != nil {
		return fmt.Errorf("failed to fetch inbox: %w", err)
	}
	written, err := repo.UpsertAll(inbox, now)
	if err != nil {
		return fmt.Errorf("failed to cache inbox: %w", err)
	}
	total += written

	saved, err := r.svc.SavedVideos(ctx, services.ListOpts{Limit: int(cmd.Int("limit"))})
	if err != nil {
		return fmt.Errorf("failed to fetch saved videos: %w", err)
	}
	written, err = repo.UpsertAll(saved.Videos, now)
	if err != nil {
		return fmt.Errorf("failed to cache saved videos: %w", err)
	}
	total += written

	discarded, err := r.svc.DiscardedVideos(ctx, int(cmd.Int("days")), services.ListOpts{})
	if err != nil {
		return fmt.Errorf("failed to fetch discarded videos: %w", err)
	}
	written, err = repo.UpsertAll(discarded, now)
	if err != nil {
		return fmt.Errorf("failed to cache discarded videos: %w", err)
	}
	total += written

	r.logger.Info("cache synced", "rows", total)
	r.writePlain("✓ Cached %d videos (%d inbox, %d saved, %d discarded)\n",
		total, len(inbox), len(saved.Videos), len(discarded))
	return nil
}

// CacheList lists cached videos by status without touching the backend.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	status := cmd.String("status")
	switch status {
	case models.StatusInbox, models.StatusSaved, models.StatusDiscarded:
	default:
		return fmt.Errorf("%w: status must be inbox, saved or discarded", shared.ErrInvalidFlag)
	}

	db, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewVideoRepository(db)
	videos, err := repo.ListByStatus(status, int(cmd.Int("limit")), int(cmd.Int("offset")))
	if err != nil {
		return fmt.Errorf("failed to list cached videos: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Cached %s (%d)", status, len(videos)))
	for i, v := range videos {
		r.writePlain("%3d. %s — %s\n", i+1, v.Title, v.ChannelName)
		r.writePlain("     id: %s  fetched: %s\n", v.ID, v.FetchedAt.Format(time.DateTime))
	}
	return nil
}

// cacheCommand handles the local offline mirror of backend listings
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Sync and browse the local video cache",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Mirror backend listings into the local cache",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum saved videos to mirror",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "How many days of discarded videos to mirror",
						Value: 30,
					},
				},
				Action: r.CacheSync,
			},
			{
				Name:  "list",
				Usage: "List cached videos without calling the backend",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Listing to show (inbox, saved, discarded)",
						Value: models.StatusInbox,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of videos to return",
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of videos to skip",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CacheList,
			},
		},
	}
}
