// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashIP returns the keyed hash stored in votes.ip_hash.
// An empty ip (no resolvable client address) hashes to "".
func HashIP(ip, salt string) string {
	if ip == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(ip))
	// 16 hex chars
	return hex.EncodeToString(mac.Sum(nil)[:8])
}

// NormalizeStudentID trims surrounding whitespace from a student ID.
// IDs are matched exactly after trimming; case is significant.
func NormalizeStudentID(id string) string {
	return strings.TrimSpace(id)
}

// NamesMatch reports whether the name a voter typed matches the name on file.
// The comparison ignores case and surrounding/internal runs of whitespace.
// A mismatch is informational only: the student ID is authoritative.
func NamesMatch(stored, supplied string) bool {
	return strings.EqualFold(collapseSpaces(stored), collapseSpaces(supplied))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
