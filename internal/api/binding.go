package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// flexString accepts a JSON string, a JSON number or a form value and keeps
// its text, so "30" and 30 reach the service the same way. A JSON number is
// decoded to its value first and rendered as an integer, so 1e3 becomes
// "1000" and 15.7 becomes "15".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s, err := unmarshalFlex(b, func(v float64) (string, bool) {
		if v < minInt64Float || v >= maxInt64Float {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	})
	if err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
func (f *flexString) UnmarshalParam(param string) error {
	*f = flexString(param)
	return nil
}

// flexDate is like flexString, but a JSON number is read as milliseconds
// since the Unix epoch and rendered as an RFC 3339 timestamp. Numbers out of
// range become domain.InvalidDate.
type flexDate string

func (f *flexDate) UnmarshalJSON(b []byte) error {
	s, err := unmarshalFlex(b, func(v float64) (string, bool) {
		if v < minEpochMillis || v > maxEpochMillis {
			return domain.InvalidDate, true
		}
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339Nano), true
	})
	if err != nil {
		return err
	}
	*f = flexDate(s)
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
func (f *flexDate) UnmarshalParam(param string) error {
	*f = flexDate(param)
	return nil
}

// Epoch milliseconds are limited to years 1 through 9999; timestamps
// outside would not parse back from their formatted text.
const (
	minInt64Float  = -9223372036854775808.0
	maxInt64Float  = 9223372036854775808.0
	minEpochMillis = -62135596800000
	maxEpochMillis = 253402300799999
)

// unmarshalFlex turns a JSON value into text: null is empty, a string is
// kept, a number goes through number, anything else keeps its raw text.
// A number the callback refuses keeps its raw text as well.
func unmarshalFlex(b []byte, number func(float64) (string, bool)) (string, error) {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return "", nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", err
		}
		v, err := n.Float64()
		if err != nil {
			return string(b), nil
		}
		if s, ok := number(v); ok {
			return s, nil
		}
		return string(b), nil
	default:
		return string(b), nil
	}
}

// bindBody binds a JSON or form body. An empty body binds to the zero value.
func bindBody(c *gin.Context, obj interface{}) error {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
