package api

// HTTPError is what endpoint handlers return when a request should fail
// with a specific status. Message goes to the client; ErrorLog stays in the
// server log only, so internals never leak into responses.
type HTTPError struct {
	StatusCode int
	Message    string
	ErrorLog   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ApiError is the JSON error body sent to clients.
type ApiError struct {
	Error string `json:"message"`
}
