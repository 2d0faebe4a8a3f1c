package template

import "encoding/json"

// Template describes one reusable conversion or validation profile: which
// source formats it accepts, what it produces, and the rule document applied
// while processing.
type Template struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	SourceFormat string          `json:"source_format"`
	TargetFormat string          `json:"target_format,omitempty"`
	Rules        json.RawMessage `json:"rules,omitempty"`
	CreatedAt    int64           `json:"created_at"`
	UpdatedAt    int64           `json:"updated_at"`
}

type List struct {
	Templates []Template `json:"templates"`
}
