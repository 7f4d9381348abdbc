// Package text provides pure string utilities shared by the command
// packages. This is a leaf package with zero internal imports.
package text

import (
	"fmt"
	"sort"
	"strings"
)

// Truncate shortens s to width runes, appending "..." when truncated.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// ParseTags splits a comma-separated tag string, trimming whitespace
// and dropping duplicates and empty entries. The result is sorted so
// repeated invocations produce stable API payloads.
func ParseTags(s string) []string {
	if s == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// FormatTags renders tags for a table cell, truncating to maxTags with
// a "+N more" suffix.
func FormatTags(tags []string, maxTags int) string {
	if len(tags) == 0 {
		return ""
	}
	if len(tags) <= maxTags {
		return strings.Join(tags, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(tags[:maxTags], ", "), len(tags)-maxTags)
}

// MaskKey hides all but the final four characters of a credential.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// Pluralize returns "n noun" with a trailing "s" when n != 1.
func Pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
