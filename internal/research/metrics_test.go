package research

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorlift/creatorlift-backend/pkg/youtube"
)

func TestComputeMetrics(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) string {
		return now.AddDate(0, 0, -d).Format(time.RFC3339)
	}

	// Five search hits; one video went private before the stats batch.
	search := &youtube.SearchResult{Items: make([]youtube.SearchItem, 5)}
	stats := &youtube.StatsResult{Items: []youtube.VideoStats{
		{VideoID: "a", ChannelID: "c1", ChannelTitle: "Alpha", ViewCount: 1000, PublishedAt: daysAgo(10)},
		{VideoID: "b", ChannelID: "c1", ChannelTitle: "Alpha", ViewCount: 3000, PublishedAt: daysAgo(30)},
		{VideoID: "c", ChannelID: "c2", ChannelTitle: "Beta", ViewCount: 500, PublishedAt: now.Format(time.RFC3339)},
		{VideoID: "d", ChannelID: "c3", ChannelTitle: "Gamma", ViewCount: 2000, PublishedAt: "not-a-timestamp"},
	}}

	m := ComputeMetrics(search, stats, now)

	assert.Equal(t, 5, m.VideoCount, "counts search hits, not stats rows")
	assert.Equal(t, int64(1625), m.AvgViews)
	assert.Equal(t, int64(3000), m.MaxViews)
	// Sorted descending [3000 2000 1000 500]; index floor(4/2)=2 picks 1000.
	assert.Equal(t, int64(1000), m.MedianViews)
	// Per-day: 1000/10 + 3000/30 + 500/1 (same day floors to one) +
	// 2000/1 (unparseable floors to one) = 2700 over 4 videos.
	assert.InDelta(t, 675.0, m.AvgViewsPerDay, 0.001)
	assert.Equal(t, 3, m.UniqueChannels)

	require.Len(t, m.TopChannels, 3)
	assert.Equal(t, "c1", m.TopChannels[0].ID)
	assert.Equal(t, int64(4000), m.TopChannels[0].Views)
	assert.Equal(t, "c3", m.TopChannels[1].ID)
	assert.Equal(t, "c2", m.TopChannels[2].ID)
}

func TestComputeMetricsNoStats(t *testing.T) {
	search := &youtube.SearchResult{Items: make([]youtube.SearchItem, 3)}

	m := ComputeMetrics(search, &youtube.StatsResult{}, time.Now())

	assert.Equal(t, 3, m.VideoCount)
	assert.Zero(t, m.AvgViews)
	assert.Zero(t, m.MedianViews)
	assert.Zero(t, m.UniqueChannels)
	assert.Empty(t, m.TopChannels)
}

func TestComputeMetricsTopChannelsTruncated(t *testing.T) {
	now := time.Now().UTC()
	stats := &youtube.StatsResult{}
	for i := 0; i < 14; i++ {
		stats.Items = append(stats.Items, youtube.VideoStats{
			VideoID:     fmt.Sprintf("v%d", i),
			ChannelID:   fmt.Sprintf("ch%02d", i),
			ViewCount:   int64(100 * (i + 1)),
			PublishedAt: now.AddDate(0, 0, -7).Format(time.RFC3339),
		})
	}
	search := &youtube.SearchResult{Items: make([]youtube.SearchItem, 14)}

	m := ComputeMetrics(search, stats, now)

	assert.Equal(t, 14, m.UniqueChannels)
	require.Len(t, m.TopChannels, 10)
	assert.Equal(t, "ch13", m.TopChannels[0].ID, "ranked by summed views")
	assert.Equal(t, "ch04", m.TopChannels[9].ID)
}

func TestComputeMetricsTopChannelTieBreak(t *testing.T) {
	now := time.Now().UTC()
	published := now.AddDate(0, 0, -3).Format(time.RFC3339)
	stats := &youtube.StatsResult{Items: []youtube.VideoStats{
		{VideoID: "a", ChannelID: "zz", ViewCount: 100, PublishedAt: published},
		{VideoID: "b", ChannelID: "aa", ViewCount: 100, PublishedAt: published},
	}}
	search := &youtube.SearchResult{Items: make([]youtube.SearchItem, 2)}

	m := ComputeMetrics(search, stats, now)

	require.Len(t, m.TopChannels, 2)
	assert.Equal(t, "aa", m.TopChannels[0].ID, "equal views break ties by ID")
	assert.Equal(t, "zz", m.TopChannels[1].ID)
}
