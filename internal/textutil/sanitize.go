package textutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// maxFileNameBytes keeps generated names under common filesystem limits once
// an extension and prefix are added.
const maxFileNameBytes = 200

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Input is NFC-normalized first so visually identical titles map to the same
// bytes. Slashes, backslashes, colons, and asterisks become dashes; other
// unsafe characters are removed. Leading dots are dropped so the result is
// never a hidden file or a relative path segment.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return ""
	}
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	name = strings.TrimLeft(name, ".")
	return strings.TrimSpace(truncateUTF8(name, maxFileNameBytes))
}

// UniqueName returns name, or name with a " (n)" suffix when it is already
// present in taken. The returned name is recorded in taken.
func UniqueName(name string, taken map[string]struct{}) string {
	candidate := name
	for n := 2; ; n++ {
		if _, ok := taken[strings.ToLower(candidate)]; !ok {
			break
		}
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	taken[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := 0
	for i := range s {
		if i > limit {
			break
		}
		cut = i
	}
	return s[:cut]
}
