package analytics

import (
	"context"
	"time"

	"miniblog/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const dayFormat = "2006-01-02"

// window of the posts-per-day histogram, in days, including today.
const windowDays = 7

// PostsPerDay buckets post creation times by local calendar day over the
// trailing week (today and the 6 days before it). The store only emits
// groups for days that have posts, so the result is left-joined onto the
// canonical 7-day key list, filling absent days with zero. Always 7
// entries, ascending by day.
func (e *Engine) PostsPerDay(ctx context.Context, now time.Time) ([]models.DayCount, error) {
	start := windowStart(now)

	// Day keys come from each post's own creation time, bucketed in the
	// server's zone, matching the keys dayKeys generates.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: start}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$createdAt"},
					{Key: "timezone", Value: dayTimezone(now)},
				}},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := e.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grouped []models.DayCount
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(grouped))
	for _, g := range grouped {
		counts[g.Day] = g.Count
	}

	return fillDayCounts(dayKeys(now), counts), nil
}

// dayTimezone is the zone the store buckets createdAt with. The IANA
// zone name keeps store-side bucketing aligned with dayKeys across a
// DST change inside the window; a fixed offset snapshot is only the
// fallback for unnamed zones.
func dayTimezone(now time.Time) string {
	if name := now.Location().String(); name != "" && name != "Local" {
		return name
	}
	return now.Format("-07:00")
}

// windowStart is local midnight six days before now.
func windowStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-(windowDays-1), 0, 0, 0, 0, now.Location())
}

// dayKeys generates the canonical ascending list of calendar-day keys
// for the window ending at now.
func dayKeys(now time.Time) []string {
	keys := make([]string, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		keys = append(keys, now.AddDate(0, 0, -i).Format(dayFormat))
	}
	return keys
}

// fillDayCounts left-joins grouped counts onto the canonical key list,
// defaulting missing days to zero.
func fillDayCounts(keys []string, counts map[string]int64) []models.DayCount {
	out := make([]models.DayCount, len(keys))
	for i, k := range keys {
		out[i] = models.DayCount{Day: k, Count: counts[k]}
	}
	return out
}
