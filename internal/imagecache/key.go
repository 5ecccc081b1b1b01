package imagecache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var plausibleExtRe = regexp.MustCompile(`^\.[a-z0-9]{2,4}$`)

// DefaultExtension is used when the locator has no plausible file extension.
const DefaultExtension = ".png"

// locatorPath returns the path component of locator, ignoring query and fragment.
func locatorPath(locator string) string {
	if u, err := url.Parse(locator); err == nil && u.Path != "" {
		return u.Path
	}
	if i := strings.IndexAny(locator, "?#"); i >= 0 {
		return locator[:i]
	}
	return locator
}

// CacheKey is the hex SHA-256 of the locator's path. Signed URLs that differ
// only in their query string share a key.
func CacheKey(locator string) string {
	sum := sha256.Sum256([]byte(locatorPath(locator)))
	return hex.EncodeToString(sum[:])
}

// Extension derives the stored file extension from the locator's path.
func Extension(locator string) string {
	ext := strings.ToLower(path.Ext(locatorPath(locator)))
	if plausibleExtRe.MatchString(ext) {
		return ext
	}
	return DefaultExtension
}

// ObjectName is the file name a locator is cached under.
func ObjectName(locator string) string {
	return CacheKey(locator) + Extension(locator)
}
