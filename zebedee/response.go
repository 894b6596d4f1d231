package zebedee

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/rs/zerolog"
)

// Envelope is the success shape shared by every enveloped endpoint.
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Data    T       `json:"data"`
	Message *string `json:"message,omitempty"`
}

// ApiErrorBody is the shape returned with non-2xx statuses. Both fields are optional.
type ApiErrorBody struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
}

var (
	errInvalidJSON  = errors.New("response body is not valid JSON")
	errMissingField = errors.New("required field missing")
)

// readBody drains resp and checks the body is syntactically valid JSON.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, malformedError(resp.StatusCode, body, fmt.Errorf("failed to read response body: %w", err))
	}
	if !json.Valid(body) {
		return nil, malformedError(resp.StatusCode, body, errInvalidJSON)
	}
	return body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// parseEnvelope decodes an enveloped response into its data payload. A
// missing or null data field is only accepted when D is nillable. An
// envelope reporting success=false is an API failure whatever the status.
func parseEnvelope[D any](resp *http.Response, log zerolog.Logger) (D, error) {
	var zero D

	body, err := readBody(resp)
	if err != nil {
		return zero, err
	}
	if !isSuccess(resp.StatusCode) {
		return zero, parseAPIError(resp.StatusCode, body)
	}

	var probe struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message *string         `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return zero, malformedError(resp.StatusCode, body, err)
	}
	if isJSONNull(body) || probe.Success == nil {
		return zero, malformedError(resp.StatusCode, body, fmt.Errorf("%w: success", errMissingField))
	}
	if !*probe.Success {
		return zero, apiError(resp.StatusCode, body, probe.Message)
	}
	if probe.Message != nil && *probe.Message != "" {
		log.Debug().Int("status", resp.StatusCode).Str("message", *probe.Message).Msg("ZEBEDEE API message")
	}
	if isJSONNull(probe.Data) {
		if optional[D]() {
			return zero, nil
		}
		return zero, malformedError(resp.StatusCode, body, fmt.Errorf("%w: data", errMissingField))
	}

	var env Envelope[D]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, malformedError(resp.StatusCode, body, err)
	}
	return env.Data, nil
}

// parseRaw decodes a non-enveloped response. required lists top-level keys
// that must be present on success.
func parseRaw[T any](resp *http.Response, required ...string) (T, error) {
	var zero T

	body, err := readBody(resp)
	if err != nil {
		return zero, err
	}
	if !isSuccess(resp.StatusCode) {
		return zero, parseAPIError(resp.StatusCode, body)
	}

	if len(required) > 0 {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(body, &keys); err != nil {
			return zero, malformedError(resp.StatusCode, body, err)
		}
		for _, k := range required {
			if isJSONNull(keys[k]) {
				return zero, malformedError(resp.StatusCode, body, fmt.Errorf("%w: %s", errMissingField, k))
			}
		}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, malformedError(resp.StatusCode, body, err)
	}
	return out, nil
}

// parseAPIError maps a non-2xx body onto an API failure, or a malformed
// failure when the body is not an error object.
func parseAPIError(status int, body []byte) error {
	if isJSONNull(body) || !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return malformedError(status, body, errors.New("error body is not a JSON object"))
	}
	var eb ApiErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return malformedError(status, body, err)
	}
	return apiError(status, body, eb.Message)
}

func isJSONNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func optional[D any]() bool {
	switch reflect.TypeFor[D]().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}
