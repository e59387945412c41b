package qualname

import "strings"

// Path is the structured representation of a qualified name: the dot-separated
// sequence of attribute lookups that locates a sub-module, parameter, or
// tensor attribute from the root of a module tree.
type Path []string

// String renders the path in its canonical dotted form. The empty path (which
// addresses the root itself) renders as "".
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path extended by one segment.
func (p Path) Child(name string) Path {
	child := make(Path, 0, len(p)+1)
	child = append(child, p...)
	return append(child, name)
}

// Base returns the final segment of the path, or "" for the empty path.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Join appends a segment to a dotted prefix. An empty prefix addresses the
// root, so the segment stands alone.
func Join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
