// Package ingest loads a job description from a file or URL, cleans the
// text, and bootstraps a conversation: an oracle-produced JD summary
// plus an initial alignment analysis for every seeded resume section.
package ingest

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes job-description text: LF line endings, trimmed
// lines, and at most two consecutive blank lines.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// FromFile reads and cleans a job description from a local text file.
func FromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}

// FromURL fetches a job posting page, extracts the posting text, and
// cleans it.
func FromURL(ctx context.Context, urlStr string) (string, error) {
	html, err := FetchURL(ctx, urlStr)
	if err != nil {
		return "", err
	}
	text, err := ExtractJobText(html)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}
