package openalex

import (
	"fmt"
	"net/url"
	"strconv"
)

// encodeValue normalizes a single scalar into its URL-safe textual form.
//
// Booleans must render as lowercase true/false: the API rejects any other
// casing. Strings are percent-encoded in plus-for-space form; only the value
// itself is escaped, never the structural delimiters assembled around it.
// A wrapped value encodes its inner value first, then prepends the
// operator's one-character token.
func encodeValue(value any) string {
	switch typed := value.(type) {
	case wrapped:
		return string(typed.op) + encodeValue(typed.inner)
	case bool:
		return strconv.FormatBool(typed)
	case string:
		return url.QueryEscape(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
