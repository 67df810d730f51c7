package service

// HTTPError represents an error with an associated HTTP status code.
// Services mostly return core sentinels which the presenter maps to
// statuses; HTTPError is the escape hatch for explicit overrides.
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}
