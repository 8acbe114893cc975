package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SplitType is the rule used to divide an expense amount among its participants.
type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitExact      SplitType = "EXACT"
	SplitPercentage SplitType = "PERCENTAGE"
)

func ParseSplitType(s string) (SplitType, error) {
	switch t := SplitType(strings.ToUpper(strings.TrimSpace(s))); t {
	case SplitEqual, SplitExact, SplitPercentage:
		return t, nil
	default:
		return "", fmt.Errorf("unknown split type %q", s)
	}
}

func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

func (t *SplitType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("split_type must be a string: %w", err)
	}
	parsed, err := ParseSplitType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan lets split_type columns load straight into a SplitType, rejecting
// values written by anything other than this service.
func (t *SplitType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into SplitType", src)
	}
	parsed, err := ParseSplitType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
