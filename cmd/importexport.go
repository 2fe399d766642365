package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"vtriage/internal/models"
	"vtriage/internal/shared"
	"vtriage/internal/tasks"
)

// ImportURLs imports YouTube video URLs as saved videos. URLs come from
// command arguments or, with --file, one per line from a text file.
func (r *Runner) ImportURLs(ctx context.Context, cmd *cli.Command) error {
	urls := cmd.Args().Slice()

	if path := cmd.String("file"); path != "" {
		fileURLs, err := readLines(path)
		if err != nil {
			return fmt.Errorf("failed to read url file: %w", err)
		}
		urls = append(urls, fileURLs...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("%w: provide urls as arguments or via --file", shared.ErrMissingArgument)
	}

	r.logger.Info("importing video urls", "count", len(urls))
	r.writePlain("Importing %d urls...\n", len(urls))

	result, err := r.runWithProgress(func(progressCh chan tasks.ProgressUpdate) (tasks.Result, error) {
		return r.engine.ImportVideoURLs(ctx, urls, progressCh)
	})
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writeResult(result)
	return nil
}

// ImportChannels imports channels from an export document produced by the
// export command.
func (r *Runner) ImportChannels(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	if path == "" {
		return fmt.Errorf("%w: --file is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read export file: %w", err)
	}

	var export models.ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return fmt.Errorf("failed to parse export file: %w", err)
	}

	if len(export.Channels) == 0 {
		return fmt.Errorf("%w: export file contains no channels", shared.ErrInvalidInput)
	}

	r.logger.Info("importing channels", "count", len(export.Channels), "file", path)
	r.writePlain("Importing %d channels...\n", len(export.Channels))

	result, err := r.runWithProgress(func(progressCh chan tasks.ProgressUpdate) (tasks.Result, error) {
		return r.engine.ImportChannels(ctx, export.Channels, progressCh)
	})
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writeResult(result)
	return nil
}

// ExportAll writes the full channels + saved-videos export document to a
// file, or to the output when no --output is given.
func (r *Runner) ExportAll(ctx context.Context, cmd *cli.Command) error {
	export, err := r.svc.ExportAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		return r.writeJSON(export, cmd.Bool("pretty"))
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	r.logger.Info("export written", "path", outputPath,
		"channels", len(export.Channels), "videos", len(export.SavedVideos))
	r.writePlain("✓ Exported %d channels and %d saved videos to %s\n",
		len(export.Channels), len(export.SavedVideos), outputPath)
	return nil
}

// readLines reads non-empty, non-comment lines from a text file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// importCommand handles bringing urls and channels into the backend
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import videos and channels",
		Commands: []*cli.Command{
			{
				Name:      "urls",
				Usage:     "Import YouTube video URLs as saved videos",
				ArgsUsage: "[url...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Text file with one URL per line",
					},
				},
				Action: r.ImportURLs,
			},
			{
				Name:  "channels",
				Usage: "Import channels from an export document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to an export JSON file",
						Required: true,
					},
				},
				Action: r.ImportChannels,
			},
		},
	}
}

// exportCommand handles writing the backup document
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export channels and saved videos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.ExportAll,
	}
}
