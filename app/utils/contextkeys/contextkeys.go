package contextkeys

// RequestId keys the per-request identifier in a context.
type RequestId struct{}
