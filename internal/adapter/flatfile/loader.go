// Package flatfile reads tab-delimited resources and serves the catalog from them.
package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLine bounds a single record.
const maxLine = 1 << 20

// Row is one parsed record. Field count may vary between rows.
type Row []string

// Read parses tab-delimited records from r. Empty lines are skipped. The
// format has no quoting: every byte between tabs is field data.
func Read(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var rows []Row
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		rows = append(rows, Row(strings.Split(line, "\t")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return rows, nil
}
