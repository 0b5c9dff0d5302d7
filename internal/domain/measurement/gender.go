package measurement

import (
	"bytes"
	"encoding/json"
	"strings"

	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Gender is the internal representation of a child's gender.  External input
// arrives as a string ("male"/"female"/"m"/"f") or a numeric code (1/2) and is
// normalized at the boundary; all internal logic operates on this enum only.
type Gender int

const (
	Male   Gender = 1
	Female Gender = 2
)

// String returns the normalized lowercase form used in persisted records.
func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// Code returns the numeric code consumed by the statistical model.
func (g Gender) Code() float64 {
	return float64(g)
}

// ParseGender normalizes a string gender value.  Accepted forms are "male",
// "female", "m", and "f", case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	default:
		return 0, apperrors.Validation("Gender must be 'male', 'female', 'm', or 'f'")
	}
}

// ParseGenderCode normalizes a numeric gender code (1=male, 2=female).
func ParseGenderCode(code int) (Gender, error) {
	switch code {
	case 1:
		return Male, nil
	case 2:
		return Female, nil
	default:
		return 0, apperrors.Validation("Gender must be 1 (male) or 2 (female)")
	}
}

// GenderInput carries a gender value that may arrive as a JSON string or a
// JSON number.  It keeps track of which form was supplied so that validation
// can produce the message appropriate to the input shape.
type GenderInput struct {
	raw     json.RawMessage
	present bool
}

func (g *GenderInput) UnmarshalJSON(data []byte) error {
	g.raw = append(g.raw[:0], data...)
	g.present = true
	return nil
}

func (g GenderInput) MarshalJSON() ([]byte, error) {
	if !g.present {
		return []byte("null"), nil
	}
	return g.raw, nil
}

// Present reports whether the field appeared in the request at all.  A JSON
// null counts as present; it fails normalization instead.
func (g GenderInput) Present() bool {
	return g.present
}

// Normalize resolves the raw value to a Gender.  A JSON string is parsed via
// ParseGender, an integer JSON number via ParseGenderCode; anything else is
// rejected.
func (g GenderInput) Normalize() (Gender, error) {
	if !g.present {
		return 0, apperrors.Validation("Missing required field: gender")
	}

	// Unmarshal into string or float64 is a no-op for JSON null, so null
	// has to be rejected before either typed decode.
	if isJSONNull(g.raw) {
		return 0, apperrors.Validation("Gender must be a string or integer")
	}

	var s string
	if err := json.Unmarshal(g.raw, &s); err == nil {
		return ParseGender(s)
	}

	var n float64
	if err := json.Unmarshal(g.raw, &n); err == nil && n == float64(int(n)) {
		return ParseGenderCode(int(n))
	}

	return 0, apperrors.Validation("Gender must be a string or integer")
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
