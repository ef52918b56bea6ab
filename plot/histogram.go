// Package plot renders decoded coefficient distributions as go-echarts pages.
package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// MaxBuckets caps the number of histogram bars.
const MaxBuckets = 41

// Bucket counts coefficients in [Lo, Hi].
type Bucket struct {
	Lo, Hi int64
	Count  int
}

func (b Bucket) Label() string {
	if b.Lo == b.Hi {
		return fmt.Sprint(b.Lo)
	}
	return fmt.Sprintf("%d..%d", b.Lo, b.Hi)
}

// Histogram buckets every coefficient of rows into at most MaxBuckets
// equal-width ranges spanning the observed minimum and maximum.
func Histogram(rows [][]int64) []Bucket {
	first := true
	var lo, hi int64
	for _, row := range rows {
		for _, v := range row {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}
	if first {
		return nil
	}
	// d is hi-lo in uint64, exact for any int64 pair; d+1 may not fit.
	d := uint64(hi - lo)
	width := d/MaxBuckets + 1
	n := d/width + 1
	buckets := make([]Bucket, n)
	for i := range buckets {
		bLo := lo + int64(uint64(i)*width)
		bHi := bLo + int64(width-1)
		if i == len(buckets)-1 {
			bHi = hi
		}
		buckets[i] = Bucket{Lo: bLo, Hi: bHi}
	}
	for _, row := range rows {
		for _, v := range row {
			buckets[uint64(v-lo)/width].Count++
		}
	}
	return buckets
}

// RenderHistogram writes an HTML page with a bar chart of rows' coefficients.
func RenderHistogram(w io.Writer, title string, rows [][]int64) error {
	buckets := Histogram(rows)
	if len(buckets) == 0 {
		return fmt.Errorf("no coefficients to plot")
	}
	labels := make([]string, len(buckets))
	items := make([]opts.BarData, len(buckets))
	total := 0
	for i, b := range buckets {
		labels[i] = b.Label()
		items[i] = opts.BarData{Value: b.Count}
		total += b.Count
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d polynomials, %d coefficients", len(rows), total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "centered value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)
	bar.SetXAxis(labels).AddSeries("coefficients", items)

	page := components.NewPage().SetPageTitle(title)
	page.AddCharts(bar)
	return page.Render(w)
}
