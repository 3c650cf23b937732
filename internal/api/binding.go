package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNotScalar = errors.New("expected a string, number or boolean")

// scalarString binds any JSON scalar as text. Strings are unquoted, numbers and
// booleans keep their literal form, null is empty. Form values bind as plain
// strings.
type scalarString string

func (s *scalarString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errNotScalar
	}
	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalarString(str)
	case '{', '[':
		return errNotScalar
	default:
		if bytes.Equal(data, []byte("null")) {
			*s = ""
			return nil
		}
		*s = scalarString(data)
	}
	return nil
}
