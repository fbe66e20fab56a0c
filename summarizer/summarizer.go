package summarizer

import "context"

// Summarizer reduces a full article body to a short newsletter synopsis.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
