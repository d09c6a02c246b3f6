// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identity helpers.

# Student IDs

Student IDs are the authoritative voter identity:

	id := auth.NormalizeStudentID(req.StudentID)

Only surrounding whitespace is removed; IDs are otherwise compared exactly.

# Name Checks

The name on a ballot is a soft consistency check against the roster:

	if !auth.NamesMatch(student.Name, suppliedName) {
		slog.Warn("name mismatch", ...)
	}

A mismatch never rejects a vote.

# IP Hashing

For privacy-preserving fraud detection:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Stored on each vote
row instead of the raw address.
*/
package auth
