package doxygen

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// WriteTo serializes c as one `KEY = value` line per option, in order.
// Scalars are double-quoted; list elements are individually quoted and
// joined by a space. Embedded double quotes are escaped as \".
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, key := range c.keys {
		n, err := io.WriteString(w, key+" = "+encodeValue(c.values[key])+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteFile writes c to path, replacing any existing file.
func (c *Config) WriteFile(path string) error {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return err
	}
	// #nosec G306 -- generated Doxyfile is not secret
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func encodeValue(v Value) string {
	if !v.list {
		return quote(v.String())
	}
	quoted := make([]string, len(v.items))
	for i, item := range v.items {
		quoted[i] = quote(item)
	}
	return strings.Join(quoted, " ")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
