package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// Fetch retrieves job description from file or URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves job description with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		// It's a URL - fetch via HTTP
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch JD from URL: %s", input)
			return content, err
		}
		return content, err
	}

	// It's a file path - read from disk
	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads job description from a file.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves job description from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	// Set a reasonable user agent
	req.Header.Set("User-Agent", "resume-latex/1.0")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	// Read response body
	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content, err = extractText(string(bodyBytes))
	if err != nil {
		return content, err
	}

	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// jobSelectors locate the posting body on common job boards, most specific first.
//
//nolint:gochecknoglobals // selector list
var jobSelectors = []string{
	".job-description",
	"#job-description",
	".job-content",
	"#job-content",
	".posting-page",
	"main",
	"article",
	"#content",
}

// extractText parses the page and returns the text of the job posting body.
func extractText(html string) (text string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	doc.Find("nav, footer, header, script, style, noscript, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range jobSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	text = cleanWhitespace(content.Text())
	return text, err
}

// cleanWhitespace collapses runs of blanks inside lines and drops empty lines.
func cleanWhitespace(raw string) (text string) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	text = strings.Join(lines, "\n")
	return text
}
