package drawio

import "strings"

// Style is a parsed draw.io style string. A bare token such as "ellipse" or
// "text" is stored under ShapeKey.
type Style map[string]string

const ShapeKey = "shape"

// ParseStyle splits "ellipse;fillColor=#fff;" into its key/value pairs.
func ParseStyle(s string) Style {
	st := make(Style)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			if _, set := st[ShapeKey]; !set {
				st[ShapeKey] = k
			}
			continue
		}
		st[k] = v
	}
	return st
}

// Get returns the value of key or def when unset.
func (s Style) Get(key, def string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}
