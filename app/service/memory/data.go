package memory

// Entry is one recorded query together with its result.
type Entry struct {
	Query  string `json:"query"`
	Result any    `json:"result"`
}
