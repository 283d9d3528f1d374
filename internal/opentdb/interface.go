package opentdb

import "context"

// ClientInterface defines the interface for Open Trivia DB operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	FetchQuestions(ctx context.Context, categoryID, amount int, difficulty string) ([]Result, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
