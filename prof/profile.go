// Package prof records wall-clock timings of conversion stages.
package prof

import (
	"sort"
	"sync"
	"time"
)

// Entry is one timed call of a labelled stage.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Stat aggregates every Entry sharing a label.
type Stat struct {
	Label string
	Calls int
	Total time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track records the time elapsed since start under label. Use it as
// `defer prof.Track(time.Now(), "label")`.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Summarize groups entries by label, slowest total first.
func Summarize(entries []Entry) []Stat {
	byLabel := make(map[string]*Stat)
	for _, e := range entries {
		s, ok := byLabel[e.Label]
		if !ok {
			s = &Stat{Label: e.Label}
			byLabel[e.Label] = s
		}
		s.Calls++
		s.Total += e.Dur
	}
	out := make([]Stat, 0, len(byLabel))
	for _, s := range byLabel {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Label < out[j].Label
	})
	return out
}
