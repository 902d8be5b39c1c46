package catalog

import (
	"encoding/hex"
	"strings"
)

// SessionID derives the stable identifier for a session from its title and
// division. The encoding is verbatim rather than hashed so identical inputs
// always agree and the id stays reversible. Both the session index and the
// session aggregation rebuild ids independently and must produce the same
// value.
func SessionID(title, division string) string {
	return hex.EncodeToString([]byte(strings.ToLower(title + "::" + division)))
}
