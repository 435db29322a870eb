// package formatter renders analysis results and playlist data to various formats (plain text, Markdown, JSON)
package formatter

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
)

// AnalysisReport bundles everything a rendered report needs: the playlist,
// the tracks that were submitted, and the returned analysis.
type AnalysisReport struct {
	Playlist models.Playlist
	Tracks   []models.Track
	Result   models.AnalysisResult
}

func visibility(public bool) string {
	if public {
		return "Public"
	}
	return "Private"
}

// ReportToText renders an analysis report as plain text.
func ReportToText(report *AnalysisReport) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", report.Playlist.Name))
	if report.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", report.Playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks analyzed: %d\n", report.Result.TrackCount))
	buf.WriteString(fmt.Sprintf("Generated: %s\n\n", report.Result.GeneratedAt.Format(time.RFC1123)))

	buf.WriteString("Analysis\n--------\n")
	buf.WriteString(report.Result.Summary)
	buf.WriteString("\n")

	if len(report.Tracks) > 0 {
		buf.WriteString("\nTracks\n------\n")
		for i, track := range report.Tracks {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Name))
		}
	}

	return buf.Bytes()
}

// ReportToMarkdown renders an analysis report as Markdown with an optional cover image.
func ReportToMarkdown(report *AnalysisReport, imageFilename string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", report.Playlist.Name))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if report.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", report.Playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks analyzed**: %d\n", report.Result.TrackCount))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n", visibility(report.Playlist.Public)))
	buf.WriteString(fmt.Sprintf("**Generated**: %s\n\n", report.Result.GeneratedAt.Format(time.RFC1123)))

	buf.WriteString("## Analysis\n\n")
	buf.WriteString(report.Result.Summary)
	buf.WriteString("\n")

	if len(report.Tracks) > 0 {
		buf.WriteString("\n## Tracks\n\n")
		for i, track := range report.Tracks {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Name))
		}
	}

	return buf.Bytes()
}

// PlaylistsToText renders a playlist collection as an aligned plain-text listing.
func PlaylistsToText(playlists []models.Playlist, selectedID string) []byte {
	var buf bytes.Buffer

	if len(playlists) == 0 {
		buf.WriteString("No playlists found.\n")
		return buf.Bytes()
	}

	for i, pl := range playlists {
		marker := " "
		if pl.ID == selectedID {
			marker = "*"
		}
		buf.WriteString(fmt.Sprintf("%s %2d. %s (%d tracks, %s) [%s]\n",
			marker, i+1, pl.Name, pl.TrackCount, visibility(pl.Public), pl.ID))
	}

	return buf.Bytes()
}

// ProfileToText renders a user profile as plain text.
func ProfileToText(profile *models.UserProfile) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Display name: %s\n", profile.DisplayName))
	buf.WriteString(fmt.Sprintf("ID: %s\n", profile.ID))
	if profile.Email != "" {
		buf.WriteString(fmt.Sprintf("Email: %s\n", profile.Email))
	}
	if profile.Country != "" {
		buf.WriteString(fmt.Sprintf("Country: %s\n", profile.Country))
	}

	return buf.Bytes()
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(playlist, true)
}

// ReportToJSON generates a JSON representation of the full analysis report.
func ReportToJSON(report *AnalysisReport) ([]byte, error) {
	return shared.MarshalJSON(report, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownReportResult contains information about files created by WriteMarkdownReport
type MarkdownReportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownReport writes an analysis report to Markdown in a dedicated directory.
//
// Directory name defaults to the playlist ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownReport(report *AnalysisReport, outputDir string, imageURL string) (*MarkdownReportResult, error) {
	if outputDir == "" {
		outputDir = report.Playlist.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownReportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData := ReportToMarkdown(report, coverImageFilename)

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextReport writes an analysis report to a plain text file.
//
// Defaults to {playlist.ID}_analysis.txt as the filename.
func WriteTextReport(report *AnalysisReport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_analysis.txt", report.Playlist.ID)
	}

	if err := os.WriteFile(filepath, ReportToText(report), 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
