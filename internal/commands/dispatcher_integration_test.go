package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type rebuildArticles struct {
	Build string
}

func (rebuildArticles) Type() string { return "talorgan.test.rebuild_articles" }

func (rebuildArticles) Validate() error { return nil }

func TestDispatchDeliversMessageAndRetries(t *testing.T) {
	t.Parallel()

	var builds []string
	handler := NewHandler(func(ctx context.Context, msg rebuildArticles) error {
		builds = append(builds, msg.Build)
		if len(builds) == 1 {
			return errors.New("output directory locked")
		}
		return nil
	}, WithTimeout[rebuildArticles](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), rebuildArticles{Build: "family"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(builds) != 2 || builds[0] != "family" || builds[1] != "family" {
		t.Fatalf("expected the message delivered twice, got %v", builds)
	}
}

func TestDispatchReturnsErrorOnceRetriesRunOut(t *testing.T) {
	t.Parallel()

	var outcomes []Outcome
	handler := NewHandler(func(ctx context.Context, msg rebuildArticles) error {
		return errors.New("citation not found")
	},
		WithTimeout[rebuildArticles](time.Second),
		WithObserver[rebuildArticles](func(_ context.Context, _ rebuildArticles, result Result) {
			outcomes = append(outcomes, result.Outcome)
		}),
	)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), rebuildArticles{Build: "full"}); err == nil {
		t.Fatal("expected an error after the last retry")
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(outcomes))
	}
	for i, outcome := range outcomes {
		if outcome != OutcomeFailed {
			t.Fatalf("attempt %d: expected failed, got %q", i, outcome)
		}
	}
}
