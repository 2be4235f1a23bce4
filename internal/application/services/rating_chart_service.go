package services

import (
	"fmt"
	"strings"

	"github.com/localserve/backend/internal/domain/entities"
)

const fullCircleDegrees = 360.0

// EmptyChartColor is used for the placeholder ring when there is nothing to plot.
const EmptyChartColor = "#d1d5db"

// starColors keeps the legend stable across renders.
var starColors = map[int]string{
	5: "#16a34a",
	4: "#84cc16",
	3: "#facc15",
	2: "#f97316",
	1: "#ef4444",
}

// StarColor returns the display color for a star bucket.
func StarColor(stars int) string {
	if c, ok := starColors[stars]; ok {
		return c
	}
	return EmptyChartColor
}

// BuildRatingDistribution buckets reviews by clamped star value.
func BuildRatingDistribution(reviews []entities.Review) entities.RatingDistribution {
	dist := entities.RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range reviews {
		dist[entities.ClampStars(r.Rating)]++
	}
	return dist
}

// ChartSegments lays the distribution out as contiguous arcs, 5 stars
// first. Buckets with no reviews still get a zero-width segment so the
// legend order never changes. An empty distribution yields one full gray ring.
func ChartSegments(dist entities.RatingDistribution) []entities.ChartSegment {
	total := dist.Total()
	if total == 0 {
		return []entities.ChartSegment{{
			Stars:         0,
			Count:         0,
			StartFraction: 0,
			EndFraction:   1,
			StartAngle:    0,
			EndAngle:      fullCircleDegrees,
			Color:         EmptyChartColor,
		}}
	}

	segments := make([]entities.ChartSegment, 0, entities.MaxStars)
	cumulative := 0
	for stars := entities.MaxStars; stars >= entities.MinStars; stars-- {
		count := dist[stars]
		if count < 0 {
			count = 0
		}
		start := float64(cumulative) / float64(total)
		cumulative += count
		end := float64(cumulative) / float64(total)
		if stars == entities.MinStars {
			end = 1
		}
		segments = append(segments, entities.ChartSegment{
			Stars:         stars,
			Count:         count,
			StartFraction: start,
			EndFraction:   end,
			StartAngle:    start * fullCircleDegrees,
			EndAngle:      end * fullCircleDegrees,
			Color:         StarColor(stars),
		})
	}
	return segments
}

// ConicGradient renders segments as a CSS conic-gradient for the donut.
func ConicGradient(segments []entities.ChartSegment) string {
	if len(segments) == 0 {
		return fmt.Sprintf("conic-gradient(%s 0deg 360deg)", EmptyChartColor)
	}
	stops := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.EndAngle <= seg.StartAngle {
			continue
		}
		stops = append(stops, fmt.Sprintf("%s %.2fdeg %.2fdeg", seg.Color, seg.StartAngle, seg.EndAngle))
	}
	if len(stops) == 0 {
		return fmt.Sprintf("conic-gradient(%s 0deg 360deg)", EmptyChartColor)
	}
	return "conic-gradient(" + strings.Join(stops, ", ") + ")"
}

// BuildRatingChart computes distribution, segments and gradient in one pass.
func BuildRatingChart(reviews []entities.Review) entities.RatingChart {
	dist := BuildRatingDistribution(reviews)
	segments := ChartSegments(dist)
	return entities.RatingChart{
		Distribution: dist,
		Total:        dist.Total(),
		Segments:     segments,
		Gradient:     ConicGradient(segments),
	}
}
