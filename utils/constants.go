// File: utils/constants.go
package utils

import "time"

// RevokedTokenPrefix is the prefix used for Redis token revocation keys.
const RevokedTokenPrefix = "revoked:"

// TokenTTL is the lifetime of issued auth tokens, and therefore the TTL of
// revocation entries.
const TokenTTL = 24 * time.Hour
