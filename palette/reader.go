package palette

import (
	"fmt"
	"io/ioutil"
)

// Records decodes b into colors. Decoding stops as soon as fewer than
// RecordSize bytes remain so any partial trailing record is dropped.
func Records(b []byte) Palette {
	p := make(Palette, 0, len(b)/RecordSize)
	for i := 0; i+RecordSize <= len(b); i += RecordSize {
		p = append(p, Color{b[i], b[i+1], b[i+2]})
	}
	return p
}

// Trailing returns the number of bytes at the end of b that do not form a
// complete record and would be ignored by Records.
func Trailing(b []byte) int {
	return len(b) % RecordSize
}

// ReadFile reads the named file in its entirety. The error, if any, wraps the
// underlying *os.PathError so it can be tested with errors.Is.
func ReadFile(file string) ([]byte, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return b, nil
}
