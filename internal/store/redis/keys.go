package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// KeyPrefixVisit is the prefix for per-path visit records
	KeyPrefixVisit = "waypoint:visit:"
	// KeyAllVisits is the key for the set of all visited path hashes
	KeyAllVisits = "waypoint:visits:all"
)

// VisitKey returns the redis key for a path's visit record. Paths are
// hashed so arbitrary filesystem paths never leak key-unsafe characters.
func VisitKey(path string) string {
	return KeyPrefixVisit + hashPath(path)
}

// AllVisitsKey returns the key for the set of all visit record ids.
func AllVisitsKey() string {
	return KeyAllVisits
}

func hashPath(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])[:16]
}
