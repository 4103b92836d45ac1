package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The upstream model and the settlement process both emit loosely typed
// JSON. These helpers read a single field and report whether it had the
// expected type, so one bad value never fails a whole document.

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

func rawString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawIdentifier accepts either a JSON string or a JSON number
func rawIdentifier(raw json.RawMessage) string {
	if s, ok := rawString(raw); ok {
		return s
	}
	if f, ok := rawNumber(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func rawNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// rawStrings keeps the string entries of a JSON array and drops the rest
func rawStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := rawString(item); ok {
			out = append(out, s)
		}
	}
	return out
}
