package batchapi

import (
	"encoding/json"
)

// WarmupSource identifies scheduled keep-warm events.
const WarmupSource = "warmup"

// WarmupResponse is returned for keep-warm events.
type WarmupResponse struct {
	Status string `json:"status"`
}

// IsWarmupEvent checks if a raw event is a keep-warm ping rather than a
// batch request.
func IsWarmupEvent(event json.RawMessage) bool {
	var eventMap map[string]any
	if err := json.Unmarshal(event, &eventMap); err != nil {
		return false
	}
	source, ok := eventMap["source"].(string)
	return ok && source == WarmupSource
}
