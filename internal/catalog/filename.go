package catalog

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// namePattern is the filename grammar: three-digit group-order prefix,
// underscore, group name (may contain spaces), space, parenthesized index,
// wav or mp3 extension. Example: "001_Birds (2).wav".
var namePattern = regexp.MustCompile(`^(\d{3})_(.+?) \((\d+)\)\.(mp3|wav)$`)

// Descriptor is the parsed form of one conforming filename.
type Descriptor struct {
	Prefix uint32 // group order, from the three-digit prefix
	Name   string // group name
	Index  int    // informational position within the group
	Path   string
}

// ParseFilename parses the base name of path against the grammar. The
// second return is false for non-conforming names, which callers skip.
func ParseFilename(path string) (Descriptor, bool) {
	m := namePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Descriptor{}, false
	}
	prefix, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Descriptor{}, false
	}
	index, err := strconv.Atoi(m[3])
	if err != nil {
		return Descriptor{}, false
	}
	return Descriptor{
		Prefix: uint32(prefix),
		Name:   m[2],
		Index:  index,
		Path:   path,
	}, true
}
