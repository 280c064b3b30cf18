package predict

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Request is the body posted to the prediction endpoint.
type Request struct {
	Image string `json:"image"`
}

// Result is the classifier's answer for one drawing.
type Result struct {
	Prediction Label      `json:"prediction"`
	Confidence Confidence `json:"confidence"`
}

// Label is the predicted digit. The service may send it as a string or a
// number. Strings are kept as received; numbers are shown in their
// shortest form, so 7.0 and 7e0 both read "7".
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		*l = Label(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*l = Label(data)
	return nil
}

// Confidence is a percentage. It accepts a JSON number, a numeric string,
// or null. Strings are read up to their longest numeric prefix, and
// anything unreadable counts as zero.
type Confidence float64

func (c *Confidence) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = 0
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*c = 0
			return nil
		}
		*c = Confidence(ParseConfidence(s))
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil || math.IsNaN(f) {
			f = 0
		}
		*c = Confidence(f)
	}
	return nil
}

// ParseConfidence reads the longest leading decimal number from s,
// ignoring surrounding whitespace. It returns 0 when none is found.
func ParseConfidence(s string) float64 {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return 0
			}
			return f
		}
		end--
	}
	return 0
}

// numericPrefix returns the length of the leading [sign] digits [. digits]
// [e [sign] digits] run of s.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
