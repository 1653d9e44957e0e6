package swagger

import "strings"

// NormalizePath joins prefix and rawPath and rewrites parameter segments to
// brace form: ":id" becomes "{id}", and a router pattern such as
// "{id:[0-9]+}" becomes "{id}". Other segments, empty ones included, are
// kept as is, so a path without parameters round-trips unchanged.
//
// Only whole-segment markers are recognized; "/:a-:b" yields "{a-:b}".
func NormalizePath(prefix, rawPath string) string {
	segs := strings.Split(prefix+rawPath, "/")
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, ":"):
			segs[i] = "{" + seg[1:] + "}"
		case len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}':
			if name, _, ok := strings.Cut(seg[1:len(seg)-1], ":"); ok {
				segs[i] = "{" + name + "}"
			}
		}
	}
	return strings.Join(segs, "/")
}
