package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"logsight/internal/dataset"
	"logsight/internal/stats"
)

// Options selects the tunable parts of a report.
type Options struct {
	TopFilenames   int        // size of the most-requested list
	TopNotFound    int        // size of the 404 lists
	BandwidthYear  int        // year of the daily bandwidth breakdown
	BandwidthMonth time.Month // month of the daily bandwidth breakdown
}

// Report bundles the result of every query over one dataset.
type Report struct {
	GeneratedAt           time.Time        `json:"generated_at"`
	TotalRecords          int              `json:"total_records"`
	UniqueHosts           int              `json:"unique_hosts"`
	DailyUniqueFilenames  map[string]int   `json:"daily_unique_filenames"`
	NotFoundCount         int              `json:"not_found_count"`
	TopNotFoundFilenames  []stats.Count    `json:"top_not_found_filenames"`
	TopNotFoundExtensions []stats.Count    `json:"top_not_found_extensions"`
	DailyBandwidth        map[string]int64 `json:"daily_bandwidth"`
	HourlyDistribution    [24]int          `json:"hourly_distribution"`
	TopFilenames          []stats.Count    `json:"top_filenames"`
	StatusDistribution    map[int]int      `json:"status_distribution"`
}

// Build runs all queries against the dataset. The dataset is read-only here;
// Build may safely be called concurrently with other readers.
func Build(ds *dataset.Dataset, opts Options) *Report {
	return &Report{
		GeneratedAt:           time.Now().UTC(),
		TotalRecords:          stats.TotalRecords(ds),
		UniqueHosts:           stats.UniqueHosts(ds),
		DailyUniqueFilenames:  stats.DailyUniqueFilenames(ds),
		NotFoundCount:         stats.NotFoundCount(ds),
		TopNotFoundFilenames:  stats.TopNotFoundFilenames(ds, opts.TopNotFound),
		TopNotFoundExtensions: stats.TopNotFoundExtensions(ds, opts.TopNotFound),
		DailyBandwidth:        stats.DailyBandwidth(ds, opts.BandwidthYear, opts.BandwidthMonth),
		HourlyDistribution:    stats.HourlyDistribution(ds),
		TopFilenames:          stats.TopFilenames(ds, opts.TopFilenames),
		StatusDistribution:    stats.StatusDistribution(ds),
	}
}

// Render writes the report as readable text.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Total records:  %d\n", r.TotalRecords)
	fmt.Fprintf(w, "Unique hosts:   %d\n", r.UniqueHosts)
	fmt.Fprintf(w, "404 responses:  %d\n", r.NotFoundCount)

	fmt.Fprintf(w, "\nStatus code distribution:\n")
	for _, code := range sortedIntKeys(r.StatusDistribution) {
		fmt.Fprintf(w, "  %3d  %d\n", code, r.StatusDistribution[code])
	}

	fmt.Fprintf(w, "\nRequests per hour:\n")
	for hour, n := range r.HourlyDistribution {
		fmt.Fprintf(w, "  %02d:00  %d\n", hour, n)
	}

	fmt.Fprintf(w, "\nUnique filenames per day:\n")
	for _, day := range sortedDates(r.DailyUniqueFilenames) {
		fmt.Fprintf(w, "  %s  %d\n", day, r.DailyUniqueFilenames[day])
	}

	fmt.Fprintf(w, "\nBandwidth per day (%s %d):\n", r.BandwidthMonthName(), r.BandwidthYear())
	for _, day := range sortedDates(r.DailyBandwidth) {
		fmt.Fprintf(w, "  %s  %d bytes\n", day, r.DailyBandwidth[day])
	}

	fmt.Fprintf(w, "\nTop %d requested filenames:\n", len(r.TopFilenames))
	for _, c := range r.TopFilenames {
		fmt.Fprintf(w, "  %6d  %s\n", c.Count, c.Key)
	}

	fmt.Fprintf(w, "\nTop %d filenames with 404:\n", len(r.TopNotFoundFilenames))
	for _, c := range r.TopNotFoundFilenames {
		fmt.Fprintf(w, "  %6d  %s\n", c.Count, c.Key)
	}

	fmt.Fprintf(w, "\nTop %d extensions with 404:\n", len(r.TopNotFoundExtensions))
	for _, c := range r.TopNotFoundExtensions {
		fmt.Fprintf(w, "  %6d  %s\n", c.Count, c.Key)
	}
}

// BandwidthYear reports the year covered by DailyBandwidth, derived from its
// keys; zero when the breakdown is empty.
func (r *Report) BandwidthYear() int {
	for day := range r.DailyBandwidth {
		if t, err := time.Parse(stats.DateLayout, day); err == nil {
			return t.Year()
		}
	}
	return 0
}

// BandwidthMonthName reports the month covered by DailyBandwidth.
func (r *Report) BandwidthMonthName() string {
	for day := range r.DailyBandwidth {
		if t, err := time.Parse(stats.DateLayout, day); err == nil {
			return t.Month().String()
		}
	}
	return "-"
}

// sortedDates returns the map's date keys in chronological order.
func sortedDates[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, erri := time.Parse(stats.DateLayout, keys[i])
		tj, errj := time.Parse(stats.DateLayout, keys[j])
		if erri != nil || errj != nil {
			return keys[i] < keys[j]
		}
		return ti.Before(tj)
	})
	return keys
}

func sortedIntKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
