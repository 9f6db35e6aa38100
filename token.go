package repodoc

import "context"

// TokenCounter estimates how many LLM tokens a consolidated document uses.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
