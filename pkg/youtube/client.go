package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/creatorlift/creatorlift-backend/pkg/config"
	pkgerrors "github.com/creatorlift/creatorlift-backend/pkg/errors"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
)

// Cost units per call, in the Data API's quota currency.
const (
	CostSearch     = 100
	CostVideoStats = 1
)

const (
	searchMaxResults = 50
	publishedWindow  = 6 // months
)

var (
	errAPIKeyRequired = errors.New("youtube api key is required")
	errLoggerRequired = errors.New("youtube logger is required")
)

// Client wraps the YouTube Data API v3 endpoints the research engine needs,
// with centralized auth, logging, and error mapping.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient initializes the YouTube wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.YouTubeConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/youtube/v3"
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logg,
	}

	logg.Info(ctx, "youtube client initialized")
	return c, nil
}

// Search runs a relevance-ordered video search for content published within
// the last six months. Costs CostSearch quota units.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(searchMaxResults))
	params.Set("publishedAfter", time.Now().AddDate(0, -publishedWindow, 0).UTC().Format(time.RFC3339))

	c.log(ctx, "request", "search", map[string]any{"query": query})

	body, err := c.get(ctx, "/search", params, "search")
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding youtube search response")
	}

	result := &SearchResult{
		TotalResults: parsed.PageInfo.TotalResults,
		Raw:          json.RawMessage(body),
	}
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		result.Items = append(result.Items, SearchItem{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}

	c.log(ctx, "response", "search", map[string]any{
		"results": len(result.Items),
		"total":   result.TotalResults,
	})
	return result, nil
}

// VideoStats batches a statistics+snippet lookup over all supplied video IDs
// in a single call. Costs CostVideoStats quota units regardless of batch size.
func (c *Client) VideoStats(ctx context.Context, videoIDs []string) (*StatsResult, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("part", "statistics,snippet")

	c.log(ctx, "request", "video_stats", map[string]any{"batch_size": len(videoIDs)})

	body, err := c.get(ctx, "/videos", params, "video stats")
	if err != nil {
		return nil, err
	}

	var parsed videoListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding youtube videos response")
	}

	result := &StatsResult{Raw: json.RawMessage(body)}
	for _, item := range parsed.Items {
		views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		result.Items = append(result.Items, VideoStats{
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			ViewCount:    views,
		})
	}

	c.log(ctx, "response", "video_stats", map[string]any{"results": len(result.Items)})
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("building youtube %s request", op))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("youtube %s failed", op))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("reading youtube %s response", op))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := upstreamMessage(body)
		c.log(ctx, "error", op, map[string]any{
			"status": resp.StatusCode,
			"error":  message,
		})
		return nil, pkgerrors.New(pkgerrors.CodeDependency, message)
	}

	return body, nil
}

// upstreamMessage extracts error.message from the API's JSON error body. The
// verbatim message is surfaced to callers and persisted for audit.
func upstreamMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return "youtube api error"
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("youtube %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("youtube %s", phase))
	}
}
