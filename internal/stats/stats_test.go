package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsight/internal/dataset"
)

func buildFixture(t *testing.T, lines []string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Build(lines)
	require.NoError(t, err)
	return ds
}

func TestTotalRecordsAndUniqueHosts(t *testing.T) {
	ds := buildFixture(t, []string{
		`alpha - - [01/Jul/1995:00:00:01 -0000] "GET /a.html HTTP/1.0" 200 10`,
		`alpha - - [01/Jul/1995:00:00:02 -0000] "GET /b.html HTTP/1.0" 200 10`,
		`beta - - [01/Jul/1995:00:00:03 -0000] "GET /a.html HTTP/1.0" 200 10`,
	})

	assert.Equal(t, 3, TotalRecords(ds))
	assert.Equal(t, 2, UniqueHosts(ds))
	assert.LessOrEqual(t, UniqueHosts(ds), TotalRecords(ds))
}

func TestDailyUniqueFilenames(t *testing.T) {
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:10:00:00 -0000] "GET /a.html HTTP/1.0" 200 1`,
		`h - - [01/Jul/1995:11:00:00 -0000] "GET /a.html HTTP/1.0" 200 1`, // duplicate that day
		`h - - [01/Jul/1995:12:00:00 -0000] "GET /b.html HTTP/1.0" 200 1`,
		`h - - [02/Jul/1995:10:00:00 -0000] "GET /a.html HTTP/1.0" 200 1`,
	})

	got := DailyUniqueFilenames(ds)
	assert.Equal(t, map[string]int{
		"01-Jul-1995": 2,
		"02-Jul-1995": 1,
	}, got)
}

func TestNotFoundCountMatchesDistribution(t *testing.T) {
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:00:00:01 -0000] "GET /gone.html HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:02 -0000] "GET /here.html HTTP/1.0" 200 5`,
		`h - - [01/Jul/1995:00:00:03 -0000] "GET /gone.html HTTP/1.0" 404 0`,
	})

	dist := StatusDistribution(ds)
	assert.Equal(t, 2, NotFoundCount(ds))
	assert.Equal(t, dist[404], NotFoundCount(ds))

	total := 0
	for _, n := range dist {
		total += n
	}
	assert.Equal(t, TotalRecords(ds), total)
}

func TestTopNotFoundFilenames_TieBreak(t *testing.T) {
	// /first and /second tie at 2; /third has 3. Ties keep the order of
	// first appearance in the dataset.
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:00:00:01 -0000] "GET /first HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:02 -0000] "GET /second HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:03 -0000] "GET /third HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:04 -0000] "GET /third HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:05 -0000] "GET /first HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:06 -0000] "GET /second HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:07 -0000] "GET /third HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:08 -0000] "GET /ok HTTP/1.0" 200 1`, // not a 404
	})

	got := TopNotFoundFilenames(ds, 15)
	assert.Equal(t, []Count{
		{Key: "/third", Count: 3},
		{Key: "/first", Count: 2},
		{Key: "/second", Count: 2},
	}, got)

	// Truncation respects n.
	assert.Len(t, TopNotFoundFilenames(ds, 2), 2)
}

func TestTopNotFoundExtensions(t *testing.T) {
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:00:00:01 -0000] "GET /a.html HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:02 -0000] "GET /b.html HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:03 -0000] "GET /c.gif HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:04 -0000] "GET /noext HTTP/1.0" 404 0`, // no extension, not counted
		`h - - [01/Jul/1995:00:00:05 -0000] "GET /d.html HTTP/1.0" 200 1`,
	})

	got := TopNotFoundExtensions(ds, 15)
	assert.Equal(t, []Count{
		{Key: "html", Count: 2},
		{Key: "gif", Count: 1},
	}, got)
}

func TestDailyBandwidth_RestrictedToMonth(t *testing.T) {
	ds := buildFixture(t, []string{
		`h - - [30/Jun/1995:23:00:00 -0000] "GET /x HTTP/1.0" 200 999`, // outside July
		`h - - [01/Jul/1995:10:00:00 -0000] "GET /x HTTP/1.0" 200 100`,
		`h - - [01/Jul/1995:11:00:00 -0000] "GET /y HTTP/1.0" 200 50`,
		`h - - [02/Jul/1995:10:00:00 -0000] "GET /x HTTP/1.0" 200 -`,
		`h - - [02/Jul/1995:10:00:01 -0000] "GET /x HTTP/1.0" 200 7`,
	})

	got := DailyBandwidth(ds, 1995, time.July)
	assert.Equal(t, map[string]int64{
		"01-Jul-1995": 150,
		"02-Jul-1995": 7,
	}, got)
}

func TestHourlyDistribution_AllHoursPresent(t *testing.T) {
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:05:00:00 -0000] "GET /x HTTP/1.0" 200 1`,
		`h - - [01/Jul/1995:05:30:00 -0000] "GET /x HTTP/1.0" 200 1`,
		`h - - [01/Jul/1995:23:59:59 -0000] "GET /x HTTP/1.0" 200 1`,
	})

	got := HourlyDistribution(ds)
	assert.Len(t, got, 24)
	assert.Equal(t, 2, got[5])
	assert.Equal(t, 1, got[23])
	assert.Equal(t, 0, got[0])
}

func TestHourlyDistribution_UsesNormalizedTime(t *testing.T) {
	// 00:00 at -0600 is 06:00 UTC; the bucket follows the UTC instant.
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:00:00:01 -0600] "GET /x HTTP/1.0" 200 1`,
	})

	got := HourlyDistribution(ds)
	assert.Equal(t, 1, got[6])
	assert.Equal(t, 0, got[0])
}

func TestTopFilenames(t *testing.T) {
	ds := buildFixture(t, []string{
		`h - - [01/Jul/1995:00:00:01 -0000] "GET /a HTTP/1.0" 200 1`,
		`h - - [01/Jul/1995:00:00:02 -0000] "GET /b HTTP/1.0" 404 0`,
		`h - - [01/Jul/1995:00:00:03 -0000] "GET /a HTTP/1.0" 200 1`,
		`h - - [01/Jul/1995:00:00:04 -0000] "GET /c HTTP/1.0" 200 1`,
	})

	got := TopFilenames(ds, 2)
	assert.Equal(t, []Count{
		{Key: "/a", Count: 2},
		{Key: "/b", Count: 1},
	}, got)
}

func TestQueriesOnEmptyDataset(t *testing.T) {
	ds := buildFixture(t, nil)

	assert.Equal(t, 0, TotalRecords(ds))
	assert.Equal(t, 0, UniqueHosts(ds))
	assert.Empty(t, DailyUniqueFilenames(ds))
	assert.Equal(t, 0, NotFoundCount(ds))
	assert.Empty(t, TopNotFoundFilenames(ds, 15))
	assert.Empty(t, TopFilenames(ds, 10))
	assert.Empty(t, StatusDistribution(ds))
	assert.Len(t, HourlyDistribution(ds), 24)
}
