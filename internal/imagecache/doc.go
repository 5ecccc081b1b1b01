// Package imagecache mirrors remote images into a content-addressed local
// directory so generated pages never depend on expiring signed URLs.
//
// Entries are keyed by the SHA-256 of the locator's path, written atomically
// and never evicted. A failed fetch degrades to the remote locator.
package imagecache
