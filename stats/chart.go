package stats

import (
	"errors"
	"io"
	"sort"

	"github.com/rgbpack/pack"
	"github.com/wcharczuk/go-chart/v2"
)

var ErrNotEnoughData = errors.New("stats: need at least two distinct match lengths to chart")

// Histogram counts the match tokens of each length.
func Histogram(tokens []pack.Token) map[int]int {
	h := make(map[int]int)
	for _, t := range tokens {
		if t.IsMatch() {
			h[t.Length]++
		}
	}
	return h
}

// WriteChart renders hist as an SVG scatter plot of count against match
// length.
func WriteChart(w io.Writer, hist map[int]int) error {
	if len(hist) < 2 {
		return ErrNotEnoughData
	}

	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	xvals := make([]float64, 0, len(keys))
	yvals := make([]float64, 0, len(keys))
	top := 1.0
	for _, k := range keys {
		xvals = append(xvals, float64(k))
		yvals = append(yvals, float64(hist[k]))
		if float64(hist[k]) > top {
			top = float64(hist[k])
		}
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "match length"},
		YAxis: chart.YAxis{
			Name: "matches",
			// An explicit range, so equal counts don't collapse the axis.
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					DotWidth: 3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}
	return graph.Render(chart.SVG, w)
}
