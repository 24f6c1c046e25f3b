package task

type ChainRetryTask struct {
	ChainID    int    `json:"chain_id"`
	RetryCount int    `json:"retry_count"` // Attempts made so far
	Error      string `json:"error"`       // Last failure
}

func (t *ChainRetryTask) TaskType() string {
	return TypeChainRetry
}

func (t *ChainRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
