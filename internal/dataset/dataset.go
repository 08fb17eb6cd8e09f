package dataset

import (
	"fmt"
	"time"

	"logsight/internal/parser"
)

// timeLayout matches the CLF timestamp, e.g. "01/Jul/1995:00:00:01 -0600".
// The offset is read per record; nothing assumes a uniform timezone.
const timeLayout = "02/Jan/2006:15:04:05 -0700"

// Record is one fully parsed access log line with a normalized UTC timestamp.
type Record struct {
	Host      string    `json:"host"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Filename  string    `json:"filename"`
	Protocol  string    `json:"protocol"`
	Extension string    `json:"extension,omitempty"`
	Status    int       `json:"status"`
	Bytes     int64     `json:"bytes"`
}

// Dataset is the immutable, source-ordered collection of parsed records.
// Once built it is never modified, so it is safe to share across queries
// and HTTP handlers without locking.
type Dataset struct {
	records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns the records in source order. Callers must treat the
// slice as read-only.
func (d *Dataset) Records() []Record { return d.records }

// Build runs the parser over every line in order, drops lines that do not
// match the access log structure, and normalizes each kept timestamp to UTC.
//
// A timestamp that the parser's pattern admitted but time.Parse rejects is a
// contract violation, not a filtering case: Build fails hard and returns no
// dataset rather than silently dropping or zeroing the record.
func Build(lines []string) (*Dataset, error) {
	p := parser.NewAccessParser()

	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		entry := p.Parse(line)
		if entry == nil {
			continue
		}

		ts, err := time.Parse(timeLayout, entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp %q in %q: %w", i+1, entry.Timestamp, line, err)
		}

		records = append(records, Record{
			Host:      entry.Host,
			Timestamp: ts.UTC(),
			Method:    entry.Method,
			Filename:  entry.Filename,
			Protocol:  entry.Protocol,
			Extension: entry.Extension,
			Status:    entry.Status,
			Bytes:     entry.Bytes,
		})
	}

	return &Dataset{records: records}, nil
}
