package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"vtriage/internal/models"
	"vtriage/internal/services"
	"vtriage/internal/shared"
	"vtriage/internal/tasks"
)

// VideosInbox lists videos awaiting triage.
func (r *Runner) VideosInbox(ctx context.Context, cmd *cli.Command) error {
	opts := services.ListOpts{
		Limit:     int(cmd.Int("limit")),
		Offset:    int(cmd.Int("offset")),
		ChannelID: cmd.String("channel"),
	}
	if cmd.Bool("no-shorts") {
		noShorts := false
		opts.IsShort = &noShorts
	}

	r.logger.Debug("fetching inbox", "limit", opts.Limit, "offset", opts.Offset)

	videos, err := r.svc.InboxVideos(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to fetch inbox: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Inbox (%d)", len(videos)))
	r.printVideos(videos)
	return nil
}

// VideosSaved lists saved videos.
func (r *Runner) VideosSaved(ctx context.Context, cmd *cli.Command) error {
	opts := services.ListOpts{
		Limit:     int(cmd.Int("limit")),
		Offset:    int(cmd.Int("offset")),
		ChannelID: cmd.String("channel"),
		SortBy:    cmd.String("sort-by"),
		Order:     cmd.String("order"),
	}

	page, err := r.svc.SavedVideos(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to fetch saved videos: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Saved (%d of %d)", len(page.Videos), page.Total))
	r.printVideos(page.Videos)
	if page.HasMore {
		r.writePlain("\n…more available, use --offset %d\n", page.Offset+len(page.Videos))
	}
	return nil
}

// VideosDiscarded lists recently discarded videos.
func (r *Runner) VideosDiscarded(ctx context.Context, cmd *cli.Command) error {
	days := int(cmd.Int("days"))

	videos, err := r.svc.DiscardedVideos(ctx, days, services.ListOpts{
		Limit:  int(cmd.Int("limit")),
		Offset: int(cmd.Int("offset")),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch discarded videos: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Discarded in the last %d days (%d)", days, len(videos)))
	r.printVideos(videos)
	return nil
}

// VideosSave transitions one or more videos to saved.
func (r *Runner) VideosSave(ctx context.Context, cmd *cli.Command) error {
	return r.transition(ctx, cmd, tasks.BulkSave)
}

// VideosDiscard transitions one or more videos to discarded.
func (r *Runner) VideosDiscard(ctx context.Context, cmd *cli.Command) error {
	return r.transition(ctx, cmd, tasks.BulkDiscard)
}

// transition applies a save or discard to the ids given as arguments. A
// single id goes straight to the backend; multiple ids run through the
// engine's chunked bulk path with progress output.
func (r *Runner) transition(ctx context.Context, cmd *cli.Command, phase tasks.Phase) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one video id is required", shared.ErrMissingArgument)
	}

	verb := "save"
	if phase == tasks.BulkDiscard {
		verb = "discard"
	}

	if len(ids) == 1 {
		var (
			video *models.Video
			err   error
		)
		if phase == tasks.BulkDiscard {
			video, err = r.svc.DiscardVideo(ctx, ids[0])
		} else {
			video, err = r.svc.SaveVideo(ctx, ids[0])
		}
		if err != nil {
			return fmt.Errorf("failed to %s video: %w", verb, err)
		}

		r.logger.Info("video updated", "id", video.ID, "status", video.Status)
		r.writePlain("✓ %s: %s\n", video.Status, video.Title)
		return nil
	}

	gerund := "Saving"
	if phase == tasks.BulkDiscard {
		gerund = "Discarding"
	}
	r.logger.Info("bulk transition", "action", verb, "count", len(ids))
	r.writePlain("%s %d videos...\n", gerund, len(ids))

	result, err := r.runWithProgress(func(progressCh chan tasks.ProgressUpdate) (tasks.Result, error) {
		if phase == tasks.BulkDiscard {
			return r.engine.BulkDiscard(ctx, ids, progressCh)
		}
		return r.engine.BulkSave(ctx, ids, progressCh)
	})
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writeResult(result)
	return nil
}

// VideosPurge permanently deletes all discarded videos.
func (r *Runner) VideosPurge(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: purge is permanent, re-run with --yes to confirm", shared.ErrMissingArgument)
	}

	result, err := r.svc.PurgeDiscarded(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge discarded videos: %w", err)
	}

	r.logger.Info("purged discarded videos", "deleted", result.DeletedCount)
	r.writePlain("✓ %s\n", result.Message)
	return nil
}

func (r *Runner) printVideos(videos []models.Video) {
	for i, v := range videos {
		short := ""
		if v.IsShort {
			short = " [short]"
		}
		r.writePlain("%3d. %s — %s%s\n", i+1, v.Title, v.Channel(), short)
		r.writePlain("     id: %s\n", v.ID)
	}
}

// videosCommand handles listing and triaging videos
func videosCommand(r *Runner) *cli.Command {
	listFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of videos to return",
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Number of videos to skip",
		},
		&cli.StringFlag{
			Name:  "channel",
			Usage: "Filter by channel id",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}

	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "List and triage videos",
		Commands: []*cli.Command{
			{
				Name:  "inbox",
				Usage: "List videos awaiting triage",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "no-shorts",
						Usage: "Exclude YouTube Shorts",
					},
				}, listFlags...),
				Action: r.VideosInbox,
			},
			{
				Name:  "saved",
				Usage: "List saved videos",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "sort-by",
						Usage: "Sort field (saved_at or published_at)",
						Value: "saved_at",
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Sort order (asc or desc)",
						Value: "desc",
					},
				}, listFlags...),
				Action: r.VideosSaved,
			},
			{
				Name:  "discarded",
				Usage: "List recently discarded videos",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "How many days back to look",
						Value: 30,
					},
				}, listFlags...),
				Action: r.VideosDiscarded,
			},
			{
				Name:      "save",
				Usage:     "Save one or more videos by id",
				ArgsUsage: "<id> [id...]",
				Action:    r.VideosSave,
			},
			{
				Name:      "discard",
				Usage:     "Discard one or more videos by id",
				ArgsUsage: "<id> [id...]",
				Action:    r.VideosDiscard,
			},
			{
				Name:  "purge",
				Usage: "Permanently delete all discarded videos",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm permanent deletion",
					},
				},
				Action: r.VideosPurge,
			},
		},
	}
}
