package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names of the JSON boundary.
const (
	fieldMethod     = "method"
	fieldURL        = "url"
	fieldHeaders    = "headers"
	fieldBody       = "body"
	headerPairWidth = 2
)

//nolint:gochecknoglobals // Immutable lookup tables.
var (
	jsonNull = []byte("null")

	requestFields = map[string]struct{}{
		fieldMethod:  {},
		fieldURL:     {},
		fieldHeaders: {},
		fieldBody:    {},
	}
)

// responsePayload is the JSON shape of a ResponseDescriptor.
type responsePayload struct {
	Status     int      `json:"status"`
	StatusText string   `json:"statusText"`
	Headers    []Header `json:"headers"`
	Body       string   `json:"body"`
	ElapsedMs  float64  `json:"elapsedMs"`
}

// MarshalJSON encodes the header as a two-element array.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal([headerPairWidth]string{h.Name, h.Value})
}

// UnmarshalJSON decodes a header from a two-element array of strings.
func (h *Header) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("header must be a [name, value] array: %w", err)
	}

	if pair == nil {
		return fmt.Errorf("header must be a [name, value] array, got %s", data)
	}

	if len(pair) != headerPairWidth {
		return fmt.Errorf("header must have exactly %d elements, got %d", headerPairWidth, len(pair))
	}

	name, err := decodeString("header name", pair[0])
	if err != nil {
		return err
	}

	value, err := decodeString("header value", pair[1])
	if err != nil {
		return err
	}

	h.Name, h.Value = name, value

	return nil
}

// DecodeRequest parses the JSON request shape into a RequestDescriptor.
// All four fields are required, must have the right type and must appear once.
// Unknown fields are ignored.
// Every shape mismatch is reported as ErrSerialization.
func DecodeRequest(payload []byte) (*RequestDescriptor, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid request format: %v", ErrSerialization, err)
	}

	if fields == nil {
		return nil, fmt.Errorf("%w: invalid request format: expected an object", ErrSerialization)
	}

	if err := rejectDuplicateFields(payload); err != nil {
		return nil, fmt.Errorf("%w: invalid request format: %v", ErrSerialization, err)
	}

	var (
		descriptor RequestDescriptor
		err        error
	)

	if descriptor.Method, err = requiredString(fields, fieldMethod); err != nil {
		return nil, err
	}

	if descriptor.URL, err = requiredString(fields, fieldURL); err != nil {
		return nil, err
	}

	rawHeaders, ok := fields[fieldHeaders]
	if !ok {
		return nil, missingField(fieldHeaders)
	}

	if bytes.Equal(bytes.TrimSpace(rawHeaders), jsonNull) {
		return nil, fmt.Errorf("%w: invalid request format: %q must be an array", ErrSerialization, fieldHeaders)
	}

	if err = json.Unmarshal(rawHeaders, &descriptor.Headers); err != nil {
		return nil, fmt.Errorf("%w: invalid request format: %q: %v", ErrSerialization, fieldHeaders, err)
	}

	if descriptor.Body, err = requiredString(fields, fieldBody); err != nil {
		return nil, err
	}

	return &descriptor, nil
}

// EncodeResponse renders a ResponseDescriptor as JSON.
// Headers are always encoded as an array, never null.
func EncodeResponse(response *ResponseDescriptor) ([]byte, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: nil response", ErrSerialization)
	}

	headers := response.Headers
	if headers == nil {
		headers = []Header{}
	}

	data, err := json.Marshal(responsePayload{
		Status:     response.Status,
		StatusText: response.StatusText,
		Headers:    headers,
		Body:       response.Body,
		ElapsedMs:  response.ElapsedMs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: error serializing response: %v", ErrSerialization, err)
	}

	return data, nil
}

// EncodeRequest renders a RequestDescriptor in the JSON request shape.
func EncodeRequest(request *RequestDescriptor) ([]byte, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: nil request", ErrSerialization)
	}

	headers := request.Headers
	if headers == nil {
		headers = []Header{}
	}

	data, err := json.Marshal(map[string]any{
		fieldMethod:  request.Method,
		fieldURL:     request.URL,
		fieldHeaders: headers,
		fieldBody:    request.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: error serializing request: %v", ErrSerialization, err)
	}

	return data, nil
}

func requiredString(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", missingField(name)
	}

	value, err := decodeString(fmt.Sprintf("%q", name), raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid request format: %v", ErrSerialization, err)
	}

	return value, nil
}

func decodeString(what string, raw json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return "", fmt.Errorf("%s must be a string, got null", what)
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%s must be a string: %w", what, err)
	}

	return value, nil
}

// rejectDuplicateFields reports a request field that appears more than once
// in the top-level object. The payload must already be known to be an object.
func rejectDuplicateFields(payload []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(payload))

	// Opening brace.
	if _, err := decoder.Token(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(requestFields))

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		name, _ := token.(string)

		if _, known := requestFields[name]; known {
			if _, duplicate := seen[name]; duplicate {
				return fmt.Errorf("duplicate field %q", name)
			}

			seen[name] = struct{}{}
		}

		var skipped json.RawMessage
		if err = decoder.Decode(&skipped); err != nil {
			return err
		}
	}

	return nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: invalid request format: missing field %q", ErrSerialization, name)
}
