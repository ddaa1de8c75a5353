package data

type Counters struct {
	Successes map[string]int `json:"successes,omitempty"`
	Failures  map[string]int `json:"failures,omitempty"`
}
