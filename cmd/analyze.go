package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/formatter"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
	"github.com/urfave/cli/v3"
)

// Analyze loads the library, selects the requested playlist, and submits it
// for AI analysis.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	format := strings.ToLower(cmd.String("format"))
	outputPath := cmd.String("output")

	if err := r.requireSession(); err != nil {
		return err
	}

	switch format {
	case "text", "markdown", "json":
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if err := r.session.LoadLibrary(ctx, nil); err != nil {
		return err
	}

	if err := r.session.Select(playlistID); err != nil {
		if errors.Is(err, shared.ErrInvalidArgument) {
			return fmt.Errorf("%w: playlist %q not found, run 'spotai playlists' to list ids", shared.ErrInvalidArgument, playlistID)
		}
		return err
	}

	playlist, _ := r.session.Selected()
	r.writePlain("→ Analyzing '%s' (%d tracks)...\n", playlist.Name, playlist.TrackCount)

	result, err := r.session.Analyze(ctx, nil)
	if err != nil {
		return err
	}

	report := &formatter.AnalysisReport{
		Playlist: playlist,
		Tracks:   r.session.Tracks(),
		Result:   *result,
	}

	if outputPath != "" {
		return r.writeReport(report, format, outputPath)
	}

	switch format {
	case "markdown":
		return r.writePlain("%s", formatter.ReportToMarkdown(report, ""))
	case "json":
		data, err := formatter.ReportToJSON(report)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	default:
		return r.writePlain("%s", formatter.ReportToText(report))
	}
}

func (r *Runner) writeReport(report *formatter.AnalysisReport, format, outputPath string) error {
	switch format {
	case "markdown":
		result, err := formatter.WriteMarkdownReport(report, outputPath, report.Playlist.CoverImageURL)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Report written to %s\n", result.Directory)
	case "json":
		data, err := formatter.ReportToJSON(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return r.writePlain("✓ Report written to %s\n", outputPath)
	default:
		path, err := formatter.WriteTextReport(report, outputPath)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Report written to %s\n", path)
	}
}
