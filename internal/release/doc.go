// Package release extracts dated updates from change-log documents and orders
// them into the pages a release-notes site is made of.
//
// A document title names the release and its date ("R12: Spring Release - 3rd
// March 2024"). The body before the first "Patch Notes" heading is the release
// itself; every "### <id> - <label>" section after it is a patch.
package release
