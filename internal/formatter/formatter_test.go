package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tobyfell/movx/internal/models"
	itesting "github.com/tobyfell/movx/internal/testing"
)

func samplePlaylist() *models.Playlist {
	return &models.Playlist{
		ID:      5,
		Name:    "Noir",
		OwnerID: 3,
		Movies: []models.Movie{
			{ID: 1, ImdbID: "tt0113277", Title: "Heat", Year: "1995", Type: "movie"},
			{ID: 2, ImdbID: "tt0137523", Title: "Fight Club", Year: "1999", Type: "movie"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(samplePlaylist())
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ID,IMDb ID,Title,Year,Type" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "tt0113277") {
		t.Errorf("Expected first row to carry the IMDb id, got %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(samplePlaylist(), "poster.jpg")
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "# Noir") {
		t.Errorf("Expected title heading, got %q", content[:20])
	}
	if !strings.Contains(content, "![Poster](poster.jpg)") {
		t.Error("Expected poster image reference")
	}
	if !strings.Contains(content, "1. Heat (1995) [tt0113277]") {
		t.Errorf("Expected numbered movie entry, got:\n%s", content)
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(samplePlaylist())
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "Playlist: Noir") {
		t.Errorf("Expected playlist header, got:\n%s", content)
	}
	if !strings.Contains(content, "2. Fight Club (1999)") {
		t.Errorf("Expected numbered entries, got:\n%s", content)
	}
}

func TestWriteCSVExport(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "5")

	result, err := WriteCSVExport(samplePlaylist(), base)
	if err != nil {
		t.Fatalf("WriteCSVExport failed: %v", err)
	}

	itesting.AssertFileExists(t, result.MoviesFile)
	itesting.AssertFileExists(t, result.MetadataFile)

	var metadata models.Playlist
	if err := json.Unmarshal([]byte(itesting.MustReadFile(t, result.MetadataFile)), &metadata); err != nil {
		t.Fatalf("Metadata is not valid JSON: %v", err)
	}
	if metadata.Name != "Noir" {
		t.Errorf("Unexpected metadata: %+v", metadata)
	}
	if len(metadata.Movies) != 0 {
		t.Error("Expected metadata to omit the movie list")
	}
}

func TestWriteMarkdownExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "5")

	result, err := WriteMarkdownExport(samplePlaylist(), dir, "")
	if err != nil {
		t.Fatalf("WriteMarkdownExport failed: %v", err)
	}

	itesting.AssertDirExists(t, result.Directory)
	itesting.AssertFileExists(t, filepath.Join(dir, "README.md"))
	if result.PosterImage != "" {
		t.Error("Expected no poster without an image URL")
	}
}

func TestWriteTextExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "5_movies.txt")

	written, err := WriteTextExport(samplePlaylist(), path)
	if err != nil {
		t.Fatalf("WriteTextExport failed: %v", err)
	}
	if written != path {
		t.Errorf("Expected %s, got %s", path, written)
	}
	itesting.AssertFileExists(t, path)
}

func TestWriteExportManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	manifest := map[string]any{"format": "json", "total_playlists": 2}
	if err := WriteExportManifest(manifest, path); err != nil {
		t.Fatalf("WriteExportManifest failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(itesting.MustReadFile(t, path)), &decoded); err != nil {
		t.Fatalf("Manifest is not valid JSON: %v", err)
	}
	if decoded["format"] != "json" {
		t.Errorf("Unexpected manifest: %v", decoded)
	}
}
