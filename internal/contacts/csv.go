package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrSourceUnavailable marks a contact source that cannot be read at all.
// It is the only fatal condition in a run.
var ErrSourceUnavailable = errors.New("contact source unavailable")

// LoadCSV reads contacts from a header-addressed CSV file with columns
// name, email, platform, network_handle. Rows are returned in file order.
// Malformed individual contacts are returned as-is; shape validation is the
// caller's per-contact concern.
func LoadCSV(path string) ([]Contact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer func() { _ = file.Close() }()
	return readCSV(file)
}

func readCSV(r io.Reader) ([]Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrSourceUnavailable, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("%w: missing name column", ErrSourceUnavailable)
	}
	if _, ok := columns["platform"]; !ok {
		return nil, fmt.Errorf("%w: missing platform column", ErrSourceUnavailable)
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var list []Contact
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", ErrSourceUnavailable, err)
		}
		list = append(list, Contact{
			Name:          field(row, "name"),
			Email:         field(row, "email"),
			Platform:      NormalizePlatform(field(row, "platform")),
			NetworkHandle: field(row, "network_handle"),
		})
	}
	return list, nil
}
