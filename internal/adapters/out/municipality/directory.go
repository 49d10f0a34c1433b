// Package municipality resolves free-text city names to the aggregator's
// municipality codes using a static reference table.
package municipality

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// minFragmentLen is the shortest city that may match part of a table name.
const minFragmentLen = 4

//go:embed municipalities.yaml
var defaultTable []byte

var ErrEmptyTable = errors.New("municipality table has no entries")

type tableFile struct {
	Fallback       string  `yaml:"fallback"`
	Municipalities []entry `yaml:"municipalities"`
}

type entry struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
}

type folded struct {
	entry
	name       string
	department string
}

// Directory implements ports.MunicipalityDirectory. It is immutable after
// construction and safe for concurrent use.
type Directory struct {
	entries  []folded
	fallback string
}

// NewDefaultDirectory loads the embedded table.
func NewDefaultDirectory() (*Directory, error) {
	return NewDirectory(defaultTable)
}

// NewDirectory parses a YAML table with a fallback code and a municipality list.
func NewDirectory(data []byte) (*Directory, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse municipality table: %w", err)
	}
	if len(file.Municipalities) == 0 {
		return nil, ErrEmptyTable
	}
	if strings.TrimSpace(file.Fallback) == "" {
		return nil, errors.New("municipality table has no fallback code")
	}

	entries := make([]folded, 0, len(file.Municipalities))
	for i, e := range file.Municipalities {
		if strings.TrimSpace(e.Code) == "" || strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("municipality entry %d is missing code or name", i)
		}
		entries = append(entries, folded{entry: e, name: Fold(e.Name), department: Fold(e.Department)})
	}

	return &Directory{entries: entries, fallback: strings.TrimSpace(file.Fallback)}, nil
}

// Fallback returns the code used for unknown cities.
func (d *Directory) Fallback() string {
	return d.fallback
}

// Len returns the number of known municipalities.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Resolve matches city against the table ignoring case and accents. An exact name
// beats a substring match in either direction, and within each tier an entry whose
// department also matches wins. A city only matches inside a longer table name
// when it has at least minFragmentLen letters. Unknown or blank cities get the
// fallback code.
func (d *Directory) Resolve(city, department string) string {
	c := Fold(city)
	if c == "" {
		return d.fallback
	}
	dep := Fold(department)

	exact := func(e folded) bool { return e.name == c }
	fragment := utf8.RuneCountInString(c) >= minFragmentLen
	partial := func(e folded) bool {
		return strings.Contains(c, e.name) || (fragment && strings.Contains(e.name, c))
	}

	for _, match := range []func(folded) bool{exact, partial} {
		first := ""
		for _, e := range d.entries {
			if !match(e) {
				continue
			}
			if dep != "" && departmentMatches(e.department, dep) {
				return e.Code
			}
			if first == "" {
				first = e.Code
			}
		}
		if first != "" {
			return first
		}
	}

	return d.fallback
}

func departmentMatches(entry, given string) bool {
	return entry != "" && (strings.Contains(entry, given) || strings.Contains(given, entry))
}

// Fold lower-cases s, strips diacritics and collapses punctuation and whitespace
// runs into single spaces.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	fields := strings.FieldsFunc(strings.ToLower(out), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.Join(fields, " ")
}
