package entity

import (
	"bytes"
	"fmt"
)

// TriState is a three-valued answer for the yes/no questions of the form
// wizard. Unset means the question has not been answered yet, which is
// distinct from an explicit No.
type TriState int

const (
	Unset TriState = iota
	Yes
	No
)

func (t TriState) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	}

	return "unset"
}

// MarshalJSON keeps the wire shape of the stored records: true, false or null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	}

	return []byte("null"), nil
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*t = Yes
	case bytes.Equal(data, []byte("false")):
		*t = No
	case bytes.Equal(data, []byte("null")):
		*t = Unset
	default:
		return fmt.Errorf("cannot unmarshal %q into TriState", data)
	}

	return nil
}
