package stats

import (
	"sort"
	"time"

	"logsight/internal/dataset"
)

// DateLayout is the grouping key for the per-day queries, e.g. "01-Jul-1995".
const DateLayout = "02-Jan-2006"

// Count pairs a grouping key with its frequency.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TotalRecords returns the number of parsed records.
func TotalRecords(ds *dataset.Dataset) int {
	return ds.Len()
}

// UniqueHosts returns the number of distinct client hosts.
func UniqueHosts(ds *dataset.Dataset) int {
	seen := make(map[string]struct{})
	for _, r := range ds.Records() {
		seen[r.Host] = struct{}{}
	}
	return len(seen)
}

// DailyUniqueFilenames counts the distinct filenames requested on each
// calendar day.
func DailyUniqueFilenames(ds *dataset.Dataset) map[string]int {
	days := make(map[string]map[string]struct{})
	for _, r := range ds.Records() {
		day := r.Timestamp.Format(DateLayout)
		files, ok := days[day]
		if !ok {
			files = make(map[string]struct{})
			days[day] = files
		}
		files[r.Filename] = struct{}{}
	}

	out := make(map[string]int, len(days))
	for day, files := range days {
		out[day] = len(files)
	}
	return out
}

// NotFoundCount returns how many requests drew a 404.
func NotFoundCount(ds *dataset.Dataset) int {
	n := 0
	for _, r := range ds.Records() {
		if r.Status == 404 {
			n++
		}
	}
	return n
}

// TopNotFoundFilenames returns the n most frequent filenames among 404
// responses, most frequent first.
func TopNotFoundFilenames(ds *dataset.Dataset, n int) []Count {
	return topCounts(ds, n, func(r dataset.Record) (string, bool) {
		return r.Filename, r.Status == 404
	})
}

// TopNotFoundExtensions returns the n most frequent file extensions among
// 404 responses. Records whose filename has no extension are not counted.
func TopNotFoundExtensions(ds *dataset.Dataset, n int) []Count {
	return topCounts(ds, n, func(r dataset.Record) (string, bool) {
		return r.Extension, r.Status == 404 && r.Extension != ""
	})
}

// DailyBandwidth sums the bytes transferred per calendar day, restricted to
// the given year and month.
func DailyBandwidth(ds *dataset.Dataset, year int, month time.Month) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range ds.Records() {
		if r.Timestamp.Year() != year || r.Timestamp.Month() != month {
			continue
		}
		out[r.Timestamp.Format(DateLayout)] += r.Bytes
	}
	return out
}

// HourlyDistribution counts requests per hour of day. Every hour 0..23 is
// present in the result, zero when no request fell in it.
func HourlyDistribution(ds *dataset.Dataset) [24]int {
	var hours [24]int
	for _, r := range ds.Records() {
		hours[r.Timestamp.Hour()]++
	}
	return hours
}

// TopFilenames returns the n most requested filenames over the whole dataset.
func TopFilenames(ds *dataset.Dataset, n int) []Count {
	return topCounts(ds, n, func(r dataset.Record) (string, bool) {
		return r.Filename, true
	})
}

// StatusDistribution returns the frequency of every HTTP status code seen.
func StatusDistribution(ds *dataset.Dataset) map[int]int {
	out := make(map[int]int)
	for _, r := range ds.Records() {
		out[r.Status]++
	}
	return out
}

// topCounts accumulates frequencies in first-appearance order and sorts by
// count descending. The stable sort keeps tied keys in the order their first
// occurrence appears in the dataset, so output is deterministic for a given
// input.
func topCounts(ds *dataset.Dataset, n int, key func(dataset.Record) (string, bool)) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, r := range ds.Records() {
		k, ok := key(r)
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			counts[i].Count++
		} else {
			index[k] = len(counts)
			counts = append(counts, Count{Key: k, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}
