package tools

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

// decodeArgs decodes a tool call's arguments into a typed struct. JSON tags
// name the fields; numeric arguments arriving as float64 are coerced.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return ErrInvalidArguments.MsgErr("failed to build argument decoder", err)
	}
	if err := dec.Decode(args); err != nil {
		return ErrInvalidArguments.MsgErr("failed to decode arguments", err)
	}
	return nil
}

// unwrapArray returns the array under key as a plain ordered sequence. A nil
// result or an absent key yields an empty slice, never nil.
func unwrapArray(raw json.RawMessage, key string) ([]any, error) {
	out := []any{}
	if raw == nil {
		return out, nil
	}
	res := gjson.GetBytes(raw, key)
	if !res.Exists() {
		return out, nil
	}
	if err := json.Unmarshal([]byte(res.Raw), &out); err != nil {
		return nil, &databricks.DecodeError{Err: err}
	}
	return out, nil
}

// ack is the result for operations where the platform replies with an empty
// body.
type ack struct {
	Status string `json:"status"`
}

// resultOrAck passes the platform's response through, substituting a status
// acknowledgement when the response carried no body.
func resultOrAck(raw json.RawMessage, status string) any {
	if raw == nil {
		return ack{Status: status}
	}
	return raw
}
