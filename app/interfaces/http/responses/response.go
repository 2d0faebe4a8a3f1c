package responses

// ErrorResponse is the error body every endpoint returns. Code is a stable
// identifier for the failure site; clients may show Error to users.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}
