package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsight/internal/dataset"
	"logsight/internal/report"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds, err := dataset.Build([]string{
		`alpha - - [01/Jul/1995:10:00:00 -0000] "GET /index.html HTTP/1.0" 200 100`,
		`beta - - [01/Jul/1995:11:00:00 -0000] "GET /missing.gif HTTP/1.0" 404 0`,
	})
	require.NoError(t, err)

	rep := report.Build(ds, report.Options{
		TopFilenames:   10,
		TopNotFound:    15,
		BandwidthYear:  1995,
		BandwidthMonth: time.July,
	})

	srv := httptest.NewServer(New(rep, ":0").routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleSummary(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/summary")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, Summary{TotalRecords: 2, UniqueHosts: 2, NotFoundCount: 1}, got)
}

func TestHandleReport(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got report.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 2, got.TotalRecords)
	assert.Equal(t, map[int]int{200: 1, 404: 1}, got.StatusDistribution)
}

func TestHandleHours(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/hours")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got [24]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got[10])
	assert.Equal(t, 1, got[11])
}

func TestHandleStatusCodes(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/status-codes")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[int]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, map[int]int{200: 1, 404: 1}, got)
}
