package clip

import (
	"net/url"
	"path/filepath"
	"strings"
)

const fileScheme = "file://"

// parseURIList extracts filesystem paths from a text/uri-list payload
// (RFC 2483): blank and '#' comment lines are skipped, only file:// URIs are
// kept. An optional "localhost" authority is dropped and the remainder is
// percent-decoded; undecodable paths are kept verbatim. Lines have no length
// limit.
func parseURIList(data []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, fileScheme) {
			continue
		}
		p := strings.TrimPrefix(line, fileScheme)
		p = strings.TrimPrefix(p, "localhost")
		if dec, err := url.PathUnescape(p); err == nil {
			p = dec
		}
		if p == "" {
			continue
		}
		paths = append(paths, filepath.FromSlash(p))
	}
	return paths
}
