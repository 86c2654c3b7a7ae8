package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseOptions reads a small options file of name=value pairs, one per
// line. Blank lines and lines starting with '#' are skipped. A name
// with no '=' is recorded with an empty value.
func ParseOptions(r io.Reader) ([]Param, error) {
	var out []Param
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, _ := strings.Cut(line, "=")
		out = append(out, Param{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	return out, nil
}

// FindOption returns the first value recorded under name.
func FindOption(params []Param, name string) (string, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
