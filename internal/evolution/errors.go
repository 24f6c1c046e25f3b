package evolution

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidChainID   = errors.New("invalid evolution chain id")
	ErrChainFetchFailed = errors.New("evolution chain fetch failed")
)

// ChainFetchError carries the transport or decoding failure behind a chain fetch.
type ChainFetchError struct {
	ChainID int
	Err     error
}

func (e *ChainFetchError) Error() string {
	return fmt.Sprintf("failed to fetch evolution chain %d: %v", e.ChainID, e.Err)
}

func (e *ChainFetchError) Unwrap() []error {
	return []error{ErrChainFetchFailed, e.Err}
}
