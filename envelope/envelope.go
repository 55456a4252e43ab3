// Package envelope parses the exchange's response bodies as a success/
// error sum type and offers helpers for extracting fields embedded at
// different nesting depths across endpoints.
package envelope

import "encoding/json"

// Envelope is the parsed form of any response body, discriminated by
// whether the raw object carried both "code" and "msg" keys: a success
// populates only Data (the whole body); an error populates Code/Msg, plus
// Data when the error body carried a "data" field.
type Envelope struct {
	IsError bool
	Data    json.RawMessage
	Code    int
	Msg     string
}

type errorShape struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Parse decodes body as an Envelope. A body that fails to parse as JSON at
// all never returns a Go error — it yields a synthetic error Envelope
// {code:-1, msg:"Failed to parse response"} instead, matching the
// boundary's never-panic contract.
func Parse(body []byte) Envelope {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		if json.Valid(body) {
			return Envelope{IsError: false, Data: json.RawMessage(body)}
		}
		return Envelope{IsError: true, Code: -1, Msg: "Failed to parse response"}
	}
	if IsErrorResponse(raw) {
		var e errorShape
		if err := json.Unmarshal(body, &e); err != nil {
			return Envelope{IsError: true, Code: -1, Msg: "Failed to parse response"}
		}
		return Envelope{IsError: true, Code: e.Code, Msg: e.Msg, Data: e.Data}
	}
	return Envelope{IsError: false, Data: json.RawMessage(body)}
}

// IsErrorResponse reports whether a decoded top-level JSON object looks
// like an error response: the untagged discrimination rule is the
// presence of both "code" and "msg" keys.
func IsErrorResponse(raw map[string]json.RawMessage) bool {
	_, hasCode := raw["code"]
	_, hasMsg := raw["msg"]
	return hasCode && hasMsg
}

// ExtractStatus pulls a top-level "status" string field out of body,
// returning "" if absent or unparsable.
func ExtractStatus(body []byte) string {
	var shape struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return ""
	}
	return shape.Status
}

// ExtractNestedData returns the "data" field at the root of body, or, if
// absent, the "data" field nested under "result" — the two shapes
// different endpoints use for their payload.
func ExtractNestedData(body []byte) json.RawMessage {
	var root struct {
		Data   json.RawMessage `json:"data"`
		Result struct {
			Data json.RawMessage `json:"data"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &root); err != nil {
		return nil
	}
	if root.Data != nil {
		return root.Data
	}
	return root.Result.Data
}
