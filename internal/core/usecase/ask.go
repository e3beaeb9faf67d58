package usecase

import (
	"context"
	"strings"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
	"github.com/aeyjeyaryan/ultradoc/internal/core/ports"
)

// AskState tracks the single question/answer exchange:
// Empty -> Submitting -> Answered, and Submitting -> Empty on failure.
type AskState string

const (
	AskEmpty      AskState = "empty"
	AskSubmitting AskState = "submitting"
	AskAnswered   AskState = "answered"
)

// NoExpansion is the ExpandedSource value when no citation body is visible.
const NoExpansion = -1

// AskFlow owns a single in-flight question/answer exchange, including the
// expandable citation state. At most one citation body is visible at a time.
type AskFlow struct {
	backend  ports.Backend
	notifier ports.Notifier
	gate     func() bool

	state    AskState
	answer   *domain.Answer
	expanded int
}

// NewAskFlow builds the flow. gate reports whether a document is loaded;
// submissions while the gate is closed are no-ops.
func NewAskFlow(backend ports.Backend, notifier ports.Notifier, gate func() bool) *AskFlow {
	return &AskFlow{
		backend:  backend,
		notifier: notifier,
		gate:     gate,
		state:    AskEmpty,
		expanded: NoExpansion,
	}
}

func (f *AskFlow) State() AskState        { return f.state }
func (f *AskFlow) Answer() *domain.Answer { return f.answer }
func (f *AskFlow) ExpandedSource() int    { return f.expanded }

// Ask submits one question. A blank question or a closed gate is a no-op,
// not an error. The previous answer is cleared before the call so a stale
// answer never lingers during a new in-flight request.
func (f *AskFlow) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}
	if f.gate != nil && !f.gate() {
		return nil
	}

	f.answer = nil
	f.expanded = NoExpansion
	f.state = AskSubmitting

	answer, err := f.backend.AskQuestion(ctx, question)
	if err != nil {
		f.state = AskEmpty
		f.notifier.Error("Could not get an answer. Please try again.")
		return err
	}

	f.answer = &answer
	f.expanded = NoExpansion
	f.state = AskAnswered
	return nil
}

// ToggleSource expands citation i, or collapses it when it is already the
// expanded one. Out-of-range indices are ignored.
func (f *AskFlow) ToggleSource(i int) {
	if f.answer == nil || i < 0 || i >= len(f.answer.Sources) {
		return
	}
	if f.expanded == i {
		f.expanded = NoExpansion
		return
	}
	f.expanded = i
}
