package api

import (
	"encoding/json"
	"sort"
)

// Result is the uniform outcome of every facade operation: either Data on
// a 2xx response or Err describing why the call failed. Transport errors
// never escape the facade; callers always receive a Result.
type Result[T any] struct {
	Data T
	Err  *ErrorPayload
}

// Success wraps a successful response body.
func Success[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Failure wraps an error payload.
func Failure[T any](err *ErrorPayload) Result[T] {
	if err == nil {
		err = &ErrorPayload{}
	}
	return Result[T]{Err: err}
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// ErrorPayload is the backend's error body shape: an optional message,
// optional non-field errors, and arbitrary field-keyed message lists.
// The backend names field keys; callers must look them up defensively
// rather than assume a fixed structure.
type ErrorPayload struct {
	Message        string
	NonFieldErrors []string
	Fields         map[string][]string
}

// Empty reports whether the payload carries no information at all.
func (p *ErrorPayload) Empty() bool {
	return p == nil || (p.Message == "" && len(p.NonFieldErrors) == 0 && len(p.Fields) == 0)
}

// Field returns the messages for a field, or nil if the backend reported
// none for it.
func (p *ErrorPayload) Field(name string) []string {
	if p == nil {
		return nil
	}
	return p.Fields[name]
}

// Summary returns a single human-readable line: the message if present,
// else the first non-field error, else the first field error in key order.
func (p *ErrorPayload) Summary() string {
	if p == nil {
		return ""
	}
	if p.Message != "" {
		return p.Message
	}
	if len(p.NonFieldErrors) > 0 {
		return p.NonFieldErrors[0]
	}
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msgs := p.Fields[k]; len(msgs) > 0 {
			return k + ": " + msgs[0]
		}
	}
	return ""
}

// UnmarshalJSON accepts the backend's loosely shaped error bodies.
// Known keys ("message", "detail", "error", "non_field_errors") map onto
// the explicit fields; everything else is treated as a field-keyed list
// of messages. Values may be a single string or a list of strings.
func (p *ErrorPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Some endpoints return a bare string.
		var s string
		if json.Unmarshal(data, &s) == nil {
			p.Message = s
			return nil
		}
		return err
	}

	for _, key := range []string{"message", "detail", "error"} {
		if v, ok := raw[key]; ok {
			delete(raw, key)
			var s string
			if p.Message == "" && json.Unmarshal(v, &s) == nil {
				p.Message = s
			}
		}
	}

	if v, ok := raw["non_field_errors"]; ok {
		p.NonFieldErrors = decodeMessages(v)
		delete(raw, "non_field_errors")
	}

	for key, v := range raw {
		msgs := decodeMessages(v)
		if len(msgs) == 0 {
			continue
		}
		if p.Fields == nil {
			p.Fields = make(map[string][]string)
		}
		p.Fields[key] = msgs
	}

	return nil
}

// MarshalJSON restores the backend's wire shape so payloads round-trip
// through logs and the probe CLI unchanged.
func (p *ErrorPayload) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+2)
	if p.Message != "" {
		out["message"] = p.Message
	}
	if len(p.NonFieldErrors) > 0 {
		out["non_field_errors"] = p.NonFieldErrors
	}
	for k, v := range p.Fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// decodeMessages accepts a JSON string or list of strings.
func decodeMessages(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	return nil
}
