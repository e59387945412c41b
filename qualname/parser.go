package qualname

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex accepts Go identifier segments plus the bare integer segments
// used for container children (e.g. "layers.0.weight").
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$|^[0-9]+$`)

// Parse creates a Path by parsing its canonical dotted string representation.
// The empty string parses to the empty path, which addresses the root.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{}, nil
	}

	var p Path
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return nil, fmt.Errorf("qualified name %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid qualified name segment: %q", segment)
		}
		p = append(p, segment)
	}
	return p, nil
}
