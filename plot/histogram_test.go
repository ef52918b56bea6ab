package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestHistogramSmallSpreadIsExact(t *testing.T) {
	b := Histogram([][]int64{{-1, 0, 1, 1}, {1, -1}})
	if len(b) != 3 {
		t.Fatalf("got %d buckets, want 3", len(b))
	}
	want := []int{2, 1, 3}
	for i, c := range want {
		if b[i].Count != c || b[i].Lo != b[i].Hi {
			t.Fatalf("bucket %d = %+v", i, b[i])
		}
	}
	if b[0].Label() != "-1" {
		t.Fatalf("label %q", b[0].Label())
	}
}

func TestHistogramWideSpread(t *testing.T) {
	rows := [][]int64{{math.MinInt64, 0, math.MaxInt64}}
	b := Histogram(rows)
	if len(b) == 0 || len(b) > MaxBuckets {
		t.Fatalf("got %d buckets", len(b))
	}
	total := 0
	for _, x := range b {
		total += x.Count
	}
	if total != 3 {
		t.Fatalf("counted %d coefficients, want 3", total)
	}
	if b[len(b)-1].Hi != math.MaxInt64 {
		t.Fatalf("last bucket ends at %d", b[len(b)-1].Hi)
	}
	if Histogram(nil) != nil {
		t.Fatalf("empty input must give no buckets")
	}
}

func TestRenderHistogram(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistogram(&buf, "secret coefficients", [][]int64{{-2, 0, 2}}); err != nil {
		t.Fatalf("RenderHistogram: %v", err)
	}
	if !strings.Contains(buf.String(), "secret coefficients") {
		t.Fatalf("title missing from output")
	}
	if err := RenderHistogram(&buf, "empty", nil); err == nil {
		t.Fatalf("empty input must fail")
	}
}

func TestHistogramBucketBoundaries(t *testing.T) {
	for _, hi := range []int64{40, 41, 82, math.MaxInt64} {
		b := Histogram([][]int64{{0, hi}})
		if len(b) > MaxBuckets {
			t.Fatalf("hi=%d: %d buckets", hi, len(b))
		}
		if b[0].Count != 1 || b[len(b)-1].Count != 1 || b[len(b)-1].Hi != hi {
			t.Fatalf("hi=%d: first %+v last %+v", hi, b[0], b[len(b)-1])
		}
	}
}
