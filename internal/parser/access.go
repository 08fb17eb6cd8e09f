package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// AccessParser parses Apache Common Log Format
// Format: host ident user [01/Jul/1995:00:00:01 -0600] "GET /path HTTP/1.0" 200 1024
type AccessParser struct {
	re *regexp.Regexp
}

func NewAccessParser() *AccessParser {
	// Anchored CLF pattern. The quoted request is captured whole and split
	// afterwards so that malformed request lines still yield a record.
	// 1=Host, 2=Timestamp, 3=Request, 4=Status, 5=Bytes
	return &AccessParser{
		re: regexp.MustCompile(`^(\S+) \S+ \S+ \[([^\]]+)\] "([^"]*)" (\d{3}) (\d+|-)`),
	}
}

// Parse converts one raw line into an Entry. A nil return means the line
// does not have the required structure; that is a filtering signal for the
// caller, not an error.
func (p *AccessParser) Parse(line string) *Entry {
	matches := p.re.FindStringSubmatch(line)
	if matches == nil {
		return nil
	}

	status, _ := strconv.Atoi(matches[4]) // \d{3} cannot fail

	var bytes int64
	if matches[5] != "-" {
		bytes, _ = strconv.ParseInt(matches[5], 10, 64)
	}

	entry := &Entry{
		Host:      matches[1],
		Timestamp: matches[2],
		Status:    status,
		Bytes:     bytes,
	}

	// The request string carries up to three tokens. Fewer tokens leave the
	// trailing fields empty without discarding the record.
	fields := strings.Fields(matches[3])
	if len(fields) > 0 {
		entry.Method = fields[0]
	}
	if len(fields) > 1 {
		entry.Filename = fields[1]
	}
	if len(fields) > 2 {
		entry.Protocol = fields[2]
	}

	entry.Extension = extensionOf(entry.Filename)

	return entry
}

// extensionOf returns the substring after the last dot of the final path
// segment. A dot inside a directory name does not count:
// "/a.b/c" has no extension, "/images/logo.gif" has "gif".
func extensionOf(filename string) string {
	slash := strings.LastIndexByte(filename, '/')
	dot := strings.LastIndexByte(filename, '.')
	if dot > slash {
		return filename[dot+1:]
	}
	return ""
}
