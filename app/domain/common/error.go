package common

import "errors"

// ErrorKind classifies a failed exchange with the Docurio API.
type ErrorKind int

const (
	// KindNetwork is a transport-level failure with no HTTP response.
	KindNetwork ErrorKind = iota
	// KindClient is a 4xx response carrying a structured message meant for display.
	KindClient
	// KindServer is a 5xx response.
	KindServer
	// KindAuthExpired is the 401 variant of KindClient. It is the one error the
	// core reacts to structurally: credentials are cleared and every cached
	// identity-derived value is invalidated.
	KindAuthExpired
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network_failure"
	case KindClient:
		return "client_error"
	case KindServer:
		return "server_error"
	case KindAuthExpired:
		return "auth_expired"
	default:
		return "unknown"
	}
}

// ApiError is a classified failure returned by the gateway. Status is zero
// for KindNetwork. Code is the server's error code when the body carried one.
// Err holds the display message for HTTP errors, or the transport error for
// KindNetwork.
type ApiError struct {
	Kind   ErrorKind
	Status int
	Code   string
	Err    error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err, defaulting to KindNetwork for
// anything that is not an ApiError.
func KindOf(err error) ErrorKind {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}

// IsAuthExpired reports whether err is the structural 401 case.
func IsAuthExpired(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuthExpired
}
