package youtube

import "encoding/json"

// SearchResult is the parsed output of a search call plus the raw payload
// retained for snapshot auditing.
type SearchResult struct {
	Items        []SearchItem
	TotalResults int
	Raw          json.RawMessage
}

// SearchItem is one video hit from the search endpoint.
type SearchItem struct {
	VideoID      string
	Title        string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
}

// StatsResult is the parsed output of a batched video statistics lookup.
type StatsResult struct {
	Items []VideoStats
	Raw   json.RawMessage
}

// VideoStats carries the per-video numbers the metric aggregation consumes.
type VideoStats struct {
	VideoID      string
	Title        string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
	ViewCount    int64
}

// Wire shapes for the Data API v3 JSON.

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet wireSnippet `json:"snippet"`
	} `json:"items"`
	PageInfo struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
}

type videoListResponse struct {
	Items []struct {
		ID         string      `json:"id"`
		Snippet    wireSnippet `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type wireSnippet struct {
	Title        string `json:"title"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
