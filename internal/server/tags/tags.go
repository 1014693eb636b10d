// Package tags converts between the wire representation of note tags
// (a list of strings) and the storage representation (one comma-delimited
// string). Only the HTTP boundary deals in lists; repositories see the
// encoded form.
package tags

import "strings"

// Delimiter separates tags in the stored form.
const Delimiter = ","

// Encode joins tags into a single delimited string.
// An empty or nil list encodes to "".
func Encode(tags []string) string {
	return strings.Join(tags, Delimiter)
}

// Decode splits a stored tag string back into a list.
// "" decodes to an empty list, so Decode(Encode(x)) == x for any list
// without empty elements or embedded delimiters.
func Decode(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, Delimiter)
}

// Validate reports whether every tag is non-empty and free of the
// delimiter character, the precondition for a lossless round trip.
func Validate(tags []string) bool {
	for _, tag := range tags {
		if tag == "" || strings.Contains(tag, Delimiter) {
			return false
		}
	}
	return true
}
