package decode

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Source is a readable stream of decoded log text.
// Close releases the underlying file and any decompression wrapper.
type Source struct {
	r       io.Reader
	closers []io.Closer
}

func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close closes wrappers innermost-first
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens an access log for reading. Compression is chosen by suffix
// (.gz or .bz2); everything is decoded as ISO-8859-1 so that no byte
// sequence can fail to decode.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	src := &Source{closers: []io.Closer{f}}

	var raw io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		src.closers = append(src.closers, gz)
		raw = gz
	case strings.HasSuffix(path, ".bz2"):
		raw = bzip2.NewReader(f)
	}

	src.r = transform.NewReader(raw, charmap.ISO8859_1.NewDecoder())
	return src, nil
}

// ReadLines drains the reader into an ordered slice of lines, each trimmed
// of surrounding whitespace. Empty lines are kept; the parser filters them.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	// Access logs occasionally carry very long request strings.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log source: %w", err)
	}
	return lines, nil
}

// ReadFile opens path and returns its decoded, trimmed lines.
func ReadFile(path string) ([]string, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return ReadLines(src)
}
