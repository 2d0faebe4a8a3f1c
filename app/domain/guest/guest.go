package guest

// Usage is the server's advisory view of an unauthenticated caller's
// free-tier allowance. The server enforces the limit; this value only shapes
// what the UI shows.
type Usage struct {
	Used     int   `json:"used"`
	Limit    int   `json:"limit"`
	ResetsAt int64 `json:"resets_at,omitempty"`
}

func (u Usage) Exhausted() bool {
	return u.Limit > 0 && u.Used >= u.Limit
}

func (u Usage) Remaining() int {
	if u.Exhausted() {
		return 0
	}
	return u.Limit - u.Used
}
