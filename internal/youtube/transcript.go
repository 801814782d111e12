package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fabwerk90/second-brain-collector/internal/logger"
)

const defaultBaseURL = "https://www.youtube.com/api/timedtext"

// Fetcher retrieves video transcripts from YouTube's timedtext endpoint.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	language   string
}

// NewFetcher creates a transcript fetcher for the given caption language.
func NewFetcher(language string) *Fetcher {
	if language == "" {
		language = "en"
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		language:   language,
	}
}

// timedtextResponse is the raw timedtext API response.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	Segs []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// Fetch returns the full transcript text of a video, with caption events
// joined by single spaces. It fails if no transcript is available for the
// video in the configured language.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("video ID is required")
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", f.language)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build timedtext request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("no transcript found for video %s in language %s", videoID, f.language)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("rate limited by YouTube")
	default:
		return "", fmt.Errorf("timedtext API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read timedtext response: %w", err)
	}

	transcript, err := parseTimedtext(body)
	if err != nil {
		return "", err
	}
	if transcript == "" {
		return "", fmt.Errorf("no transcript available for video %s in language %s", videoID, f.language)
	}

	logger.Debug("Transcript retrieved", map[string]interface{}{
		"video_id": videoID,
		"language": f.language,
		"length":   len(transcript),
	})

	return transcript, nil
}

// parseTimedtext joins all caption segments into a single transcript string.
func parseTimedtext(data []byte) (string, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to parse timedtext response: %w", err)
	}

	var parts []string
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		if t := strings.TrimSpace(text.String()); t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, " "), nil
}

// ExtractVideoID derives the video ID from a YouTube URL. Watch, short-link
// and Shorts URL forms are recognized; anything else returns an error.
func ExtractVideoID(videoURL string) (string, error) {
	var id string
	switch {
	case strings.Contains(videoURL, "youtube.com/watch?v="):
		id = strings.SplitN(videoURL, "v=", 2)[1]
		id = strings.SplitN(id, "&", 2)[0]
	case strings.Contains(videoURL, "youtu.be/"):
		id = strings.SplitN(videoURL, "youtu.be/", 2)[1]
		id = strings.SplitN(id, "?", 2)[0]
	case strings.Contains(videoURL, "youtube.com/shorts/"):
		id = strings.SplitN(videoURL, "shorts/", 2)[1]
		id = strings.SplitN(id, "?", 2)[0]
	}

	if id == "" {
		return "", fmt.Errorf("invalid YouTube URL format: %s", videoURL)
	}
	return id, nil
}
