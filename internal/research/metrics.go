package research

import (
	"math"
	"sort"
	"time"

	"github.com/creatorlift/creatorlift-backend/pkg/types"
	"github.com/creatorlift/creatorlift-backend/pkg/youtube"
)

const topChannelLimit = 10

// Metrics is the aggregate view of one research fetch, derived once and
// persisted verbatim on the snapshot.
type Metrics struct {
	VideoCount     int
	AvgViews       int64
	MedianViews    int64
	MaxViews       int64
	AvgViewsPerDay float64
	UniqueChannels int
	TopChannels    types.ChannelStats
}

// ComputeMetrics aggregates a search result with its per-video statistics.
// videoCount counts search hits; the view aggregates come from the stats
// batch, which can be smaller when individual videos have gone private
// between the two calls.
func ComputeMetrics(search *youtube.SearchResult, stats *youtube.StatsResult, now time.Time) Metrics {
	m := Metrics{VideoCount: len(search.Items)}
	if stats == nil || len(stats.Items) == 0 {
		return m
	}

	views := make([]int64, 0, len(stats.Items))
	var totalViews int64
	var totalPerDay float64
	channelViews := map[string]*types.ChannelStat{}

	for _, item := range stats.Items {
		views = append(views, item.ViewCount)
		totalViews += item.ViewCount
		totalPerDay += float64(item.ViewCount) / float64(daysSince(item.PublishedAt, now))

		if ch, ok := channelViews[item.ChannelID]; ok {
			ch.Views += item.ViewCount
		} else {
			channelViews[item.ChannelID] = &types.ChannelStat{
				ID:    item.ChannelID,
				Name:  item.ChannelTitle,
				Views: item.ViewCount,
			}
		}
	}

	// Descending order; median is the element at floor(n/2), which for even
	// sample sizes picks the lower-middle value instead of averaging the two
	// middle values. The ranking consumers were tuned against that bias, so
	// it stays.
	sort.Slice(views, func(i, j int) bool { return views[i] > views[j] })

	n := len(views)
	m.AvgViews = int64(math.Round(float64(totalViews) / float64(n)))
	m.MedianViews = views[n/2]
	m.MaxViews = views[0]
	m.AvgViewsPerDay = totalPerDay / float64(n)
	m.UniqueChannels = len(channelViews)
	m.TopChannels = topChannels(channelViews)
	return m
}

func topChannels(byID map[string]*types.ChannelStat) types.ChannelStats {
	out := make(types.ChannelStats, 0, len(byID))
	for _, ch := range byID {
		out = append(out, *ch)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > topChannelLimit {
		out = out[:topChannelLimit]
	}
	return out
}

// daysSince floors at one so same-day uploads do not divide by zero or
// inflate velocity. Unparseable timestamps also collapse to one day.
func daysSince(publishedAt string, now time.Time) int {
	published, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return 1
	}
	days := int(now.Sub(published).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
