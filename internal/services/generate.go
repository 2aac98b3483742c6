package services

import (
	"context"
	"fmt"
	"time"

	"github.com/NeroQue/course-generator-backend/pkg/llm"
)

type generation struct {
	text string
	err  error
}

// generateWithTimeout makes one provider call and gives up after timeout,
// even if the provider ignores its context
func generateWithTimeout(ctx context.Context, gen llm.Generator, prompt string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan generation, 1)
	go func() {
		text, err := gen.Generate(ctx, prompt)
		done <- generation{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("generating: %w", res.err)
		}
		return res.text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("generating: %w", ctx.Err())
	}
}
