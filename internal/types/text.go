package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is a string that also accepts JSON numbers and booleans. External parsers are
// inconsistent about whether a year, GPA or identifier comes back quoted.
type Text string

// UnmarshalJSON implements json.Unmarshaler. null leaves the value empty; objects and
// arrays are rejected.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("cannot decode JSON %c into text", data[0])
	default:
		*t = Text(data)
		return nil
	}
}

// String returns the value with surrounding whitespace removed.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Present reports whether the value is non-blank.
func (t Text) Present() bool {
	return t.String() != ""
}
