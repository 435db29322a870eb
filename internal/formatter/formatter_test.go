package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
	th "github.com/nafisuddinn/spotify-ai-analysis/internal/testing"
)

func sampleReport() *AnalysisReport {
	return &AnalysisReport{
		Playlist: models.Playlist{
			ID:          "test123",
			Name:        "Test Playlist",
			Description: "A test playlist",
			TrackCount:  2,
			Public:      true,
		},
		Tracks: []models.Track{
			{Name: "Song One", Artist: "Artist One", URI: "spotify:track:t1"},
			{Name: "Song Two", Artist: "Artist Two", URI: "spotify:track:t2"},
		},
		Result: models.AnalysisResult{
			Summary:     "An upbeat mix of indie pop.",
			PlaylistID:  "test123",
			TrackCount:  2,
			GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestRenderers(t *testing.T) {
	t.Run("ReportToText", func(t *testing.T) {
		output := string(ReportToText(sampleReport()))

		if !strings.Contains(output, "Playlist: Test Playlist") {
			t.Errorf("Text missing playlist name")
		}
		if !strings.Contains(output, "Description: A test playlist") {
			t.Errorf("Text missing description")
		}
		if !strings.Contains(output, "Tracks analyzed: 2") {
			t.Errorf("Text missing track count")
		}
		if !strings.Contains(output, "An upbeat mix of indie pop.") {
			t.Errorf("Text missing summary")
		}
		if !strings.Contains(output, "1. Artist One - Song One") {
			t.Errorf("Text missing track listing")
		}
	})

	t.Run("ReportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			output := string(ReportToMarkdown(sampleReport(), ""))

			if !strings.Contains(output, "# Test Playlist") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Description**: A test playlist") {
				t.Errorf("Markdown missing description")
			}
			if !strings.Contains(output, "**Tracks analyzed**: 2") {
				t.Errorf("Markdown missing track count")
			}
			if !strings.Contains(output, "**Visibility**: Public") {
				t.Errorf("Markdown missing visibility")
			}
			if !strings.Contains(output, "## Analysis") {
				t.Errorf("Markdown missing analysis section")
			}
			if !strings.Contains(output, "An upbeat mix of indie pop.") {
				t.Errorf("Markdown missing summary")
			}
			if !strings.Contains(output, "2. Artist Two - Song Two") {
				t.Errorf("Markdown missing track listing")
			}
			if strings.Contains(output, "![Cover]") {
				t.Errorf("Markdown should not reference a cover image")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			output := string(ReportToMarkdown(sampleReport(), "cover.jpg"))

			if !strings.Contains(output, "![Cover](cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})
	})

	t.Run("PlaylistsToText", func(t *testing.T) {
		playlists := []models.Playlist{
			{ID: "p1", Name: "Morning Mix", TrackCount: 12, Public: true},
			{ID: "p2", Name: "Focus", TrackCount: 40},
		}

		output := string(PlaylistsToText(playlists, "p2"))

		if !strings.Contains(output, "Morning Mix (12 tracks, Public) [p1]") {
			t.Errorf("listing missing first playlist, got: %s", output)
		}
		if !strings.Contains(output, "Focus (40 tracks, Private) [p2]") {
			t.Errorf("listing missing second playlist, got: %s", output)
		}
		if !strings.Contains(output, "*  2. Focus") {
			t.Errorf("listing missing selection marker, got: %s", output)
		}

		empty := string(PlaylistsToText(nil, ""))
		if !strings.Contains(empty, "No playlists found.") {
			t.Errorf("expected empty-collection message, got: %s", empty)
		}
	})

	t.Run("ProfileToText", func(t *testing.T) {
		profile := &models.UserProfile{
			ID:          "u1",
			DisplayName: "Ann",
			Email:       "ann@example.com",
			Country:     "US",
		}

		output := string(ProfileToText(profile))

		if !strings.Contains(output, "Display name: Ann") {
			t.Errorf("profile missing display name")
		}
		if !strings.Contains(output, "ID: u1") {
			t.Errorf("profile missing id")
		}
		if !strings.Contains(output, "Email: ann@example.com") {
			t.Errorf("profile missing email")
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		playlist := models.Playlist{ID: "test123", Name: "Test Playlist"}

		data, err := ToMetadataJSON(playlist)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "test123") {
			t.Errorf("JSON missing ID field")
		}
		if !strings.Contains(output, "Test Playlist") {
			t.Errorf("JSON missing Name field")
		}
	})

	t.Run("ReportToJSON", func(t *testing.T) {
		data, err := ReportToJSON(sampleReport())
		if err != nil {
			t.Fatalf("ReportToJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "An upbeat mix of indie pop.") {
			t.Errorf("JSON missing summary")
		}
		if !strings.Contains(output, "Song One") {
			t.Errorf("JSON missing track data")
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteMarkdownReport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownReport(sampleReport(), "", "")
			if err != nil {
				t.Fatalf("WriteMarkdownReport failed: %v", err)
			}

			if result.Directory != "test123" {
				t.Errorf("Expected directory 'test123', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)

			readmePath := result.Directory + "/README.md"
			th.AssertFileExists(t, readmePath)

			content := th.MustReadFile(t, readmePath)
			if !strings.Contains(content, "# Test Playlist") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(content, "An upbeat mix of indie pop.") {
				t.Errorf("Markdown missing summary")
			}

			if result.CoverImage != "" {
				t.Errorf("Expected no cover image, got '%s'", result.CoverImage)
			}
		})

		t.Run("WithCustomDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownReport(sampleReport(), "custom_report", "")
			if err != nil {
				t.Fatalf("WriteMarkdownReport failed: %v", err)
			}

			if result.Directory != "custom_report" {
				t.Errorf("Expected directory 'custom_report', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)
			th.AssertFileExists(t, result.Directory+"/README.md")
		})
	})

	t.Run("WriteTextReport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			filepath, err := WriteTextReport(sampleReport(), "")
			if err != nil {
				t.Fatalf("WriteTextReport failed: %v", err)
			}

			if filepath != "test123_analysis.txt" {
				t.Errorf("Expected 'test123_analysis.txt', got '%s'", filepath)
			}

			th.AssertFileExists(t, filepath)

			content := th.MustReadFile(t, filepath)
			if !strings.Contains(content, "Playlist: Test Playlist") {
				t.Errorf("Text missing playlist name")
			}
			if !strings.Contains(content, "An upbeat mix of indie pop.") {
				t.Errorf("Text missing summary")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			filepath, err := WriteTextReport(sampleReport(), "my_report.txt")
			if err != nil {
				t.Fatalf("WriteTextReport failed: %v", err)
			}

			if filepath != "my_report.txt" {
				t.Errorf("Expected 'my_report.txt', got '%s'", filepath)
			}

			th.AssertFileExists(t, filepath)
		})
	})
}
