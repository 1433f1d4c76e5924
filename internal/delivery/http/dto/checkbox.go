package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Checkbox is a boolean form flag. It accepts JSON booleans and the strings
// browsers submit for a ticked box ("on", "true", "1", "yes"). Anything else,
// including absence, is false.
type Checkbox bool

func (b *Checkbox) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return b.UnmarshalText([]byte(s))
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		var n json.Number
		if nerr := json.Unmarshal(data, &n); nerr != nil {
			return err
		}
		*b = n.String() != "0"
		return nil
	}
	*b = Checkbox(v)
	return nil
}

func (b *Checkbox) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "on", "true", "1", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

func (b Checkbox) Bool() bool {
	return bool(b)
}
