package metadata

import (
	"fmt"
	"strings"
)

// Format is the on-disk format of a dataset's data files.
type Format string

const (
	FormatAvro    Format = "avro"
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
)

var knownFormats = []Format{FormatAvro, FormatParquet, FormatCSV, FormatJSON}

// Formats returns the formats known to ParseFormat.
func Formats() []Format {
	return append([]Format{}, knownFormats...)
}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range knownFormats {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown dataset format %q", s)
}

func (f Format) String() string {
	return string(f)
}
