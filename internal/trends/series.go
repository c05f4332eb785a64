package trends

import (
	"sort"
	"time"

	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/mood"
)

// Point is one day on the mood and cramp chart.
type Point struct {
	Date           time.Time  `json:"date"`
	Mood           mood.Label `json:"mood"`
	MoodOrdinal    int        `json:"mood_ordinal"`
	CrampIntensity int        `json:"cramp_intensity"`
}

// Series returns entries as chart points in date order. Mood is plotted by its position
// in mood.All.
func Series(entries []logbook.Entry) ([]Point, error) {
	if len(entries) < MinEntries {
		return nil, insufficient(len(entries))
	}

	points := make([]Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, Point{
			Date:           dateOnly(e.Date),
			Mood:           e.Mood,
			MoodOrdinal:    e.Mood.Ordinal(),
			CrampIntensity: e.CrampIntensity,
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
