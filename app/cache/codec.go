package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// keyPrefix carries a cache-format version tag, so format changes invalidate
// old entries instead of being misparsed.
const keyPrefix = "translated:v1:"

// Separator joins the two parts of a cached translation. Three characters
// keeps accidental collisions with article text unlikely.
const Separator = "|||"

// fingerprintLength bounds how much content feeds the fingerprint. The
// opening of an article identifies it well enough, and keeps hashing cheap
// for long posts.
const fingerprintLength = 200

// Key derives a deterministic cache key from an entry's title and the
// opening of its content.
func Key(title, content string) string {
	runes := []rune(content)
	if len(runes) > fingerprintLength {
		runes = runes[:fingerprintLength]
	}

	hash := sha256.Sum256([]byte(title + string(runes)))
	return fmt.Sprintf("%s%x", keyPrefix, hash)
}

// EncodeEntry packs a translated title and content into a single cache value.
func EncodeEntry(title, content string) string {
	return title + Separator + content
}

// DecodeEntry unpacks a cached value. ok is false for any shape other than
// exactly two separated parts; callers treat that as a cache miss, never as
// an error.
func DecodeEntry(value string) (title, content string, ok bool) {
	parts := strings.Split(value, Separator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
