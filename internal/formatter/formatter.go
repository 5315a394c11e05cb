// package formatter renders track search results as plain text, JSON, CSV or Markdown
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Format names an output format accepted by [Render].
type Format string

const (
	Text     Format = "txt"
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
)

// Formats lists the supported formats in the order shown in help text.
var Formats = []Format{Text, JSON, CSV, Markdown}

// ParseFormat resolves a user supplied format name. "md" and "text" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// SearchResult is the exported shape of a search.
type SearchResult struct {
	Query  string         `json:"query"`
	Count  int            `json:"count"`
	Tracks []models.Track `json:"tracks"`
}

// NewSearchResult wraps tracks with their query.
func NewSearchResult(query string, tracks []models.Track) *SearchResult {
	if tracks == nil {
		tracks = []models.Track{}
	}
	return &SearchResult{Query: query, Count: len(tracks), Tracks: tracks}
}

// Render writes result to w in format f.
func Render(w io.Writer, f Format, result *SearchResult) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case Text:
		data, err = ExportToText(result)
	case JSON:
		data, err = ExportToJSON(result)
	case CSV:
		data, err = ExportToCSV(result)
	case Markdown:
		data, err = ExportToMarkdown(result)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s output: %w", f, err)
	}
	return nil
}

// ExportToCSV converts a SearchResult to CSV format with columns: ID, Title, Artists, Album, Preview
func ExportToCSV(result *SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Album", "Preview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range result.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.ArtistNames(),
			track.Album.Name,
			track.PreviewURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SearchResult to Markdown, linking each title to its preview clip.
func ExportToMarkdown(result *SearchResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Results for %q\n\n", result.Query))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", result.Count))

	for i, track := range result.Tracks {
		albumPart := ""
		if track.Album.Name != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album.Name)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - [%s](%s)%s\n", i+1, track.ArtistNames(), track.Name, track.PreviewURL, albumPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SearchResult to plain text format
func ExportToText(result *SearchResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Search: %s\n", result.Query))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", result.Count))

	for i, track := range result.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.ArtistNames(), track.Name))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a SearchResult to indented JSON
func ExportToJSON(result *SearchResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
