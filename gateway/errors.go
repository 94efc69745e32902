package gateway

import "encoding/json"

// fallbackMessage is used when neither the server nor the transport supplied
// anything human-readable.
const fallbackMessage = "request failed"

// Error is the normalized outbound-call failure. Callers never see the raw
// transport error; they get this structure, render the message, and may
// retry. StatusCode is zero when the failure never produced a response
// (network error, timeout).
type Error struct {
	StatusCode int
	Body       []byte
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// normalize builds the Error for a failed call. Message priority: the
// server-supplied message, then the transport error text, then a generic
// fallback.
func normalize(statusCode int, body []byte, transportErr error) *Error {
	message := serverMessage(body)
	if message == "" && transportErr != nil {
		message = transportErr.Error()
	}
	if message == "" {
		message = fallbackMessage
	}
	return &Error{
		StatusCode: statusCode,
		Body:       body,
		Message:    message,
	}
}

func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
