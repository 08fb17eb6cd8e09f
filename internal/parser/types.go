package parser

// Entry represents the raw fields extracted from one access log line.
// The timestamp is carried as written in the log; normalization to a
// typed instant happens when the dataset is built.
type Entry struct {
	Host      string
	Timestamp string // e.g. "01/Jul/1995:00:00:01 -0600"
	Method    string // empty if the request string was malformed
	Filename  string
	Protocol  string
	Extension string // empty when the filename has no extension
	Status    int
	Bytes     int64
}
