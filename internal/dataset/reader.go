package dataset

import (
	"path/filepath"
	"strings"
)

// sheetReader turns a file into raw records; the first record is the header.
type sheetReader interface {
	CanRead(path string) bool
	Read(path string) (sheet string, records [][]string, err error)
}

var registry []sheetReader

func register(r sheetReader) {
	registry = append(registry, r)
}

func readerFor(path string) sheetReader {
	for _, r := range registry {
		if r.CanRead(path) {
			return r
		}
	}
	return nil
}

// Extensions lists the file extensions Load accepts.
func Extensions() []string {
	return []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv", ".tsv"}
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func init() {
	register(xlsxReader{})
	register(csvReader{})
}
