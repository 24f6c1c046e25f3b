package task

// ChainExportTask asks a worker to fetch, flatten and store one evolution chain.
type ChainExportTask struct {
	ChainID int `json:"chain_id"`
}

func (t *ChainExportTask) TaskType() string {
	return TypeChainExport
}

func (t *ChainExportTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
