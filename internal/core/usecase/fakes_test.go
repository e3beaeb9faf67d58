package usecase

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

type backendFake struct {
	statusCalls  atomic.Int32
	uploadCalls  atomic.Int32
	askCalls     atomic.Int32
	extractCalls atomic.Int32

	status     domain.StatusSnapshot
	statusErr  error
	upload     domain.UploadResult
	uploadErr  error
	answer     domain.Answer
	askErr     error
	extraction domain.ExtractionResult
	extractErr error

	lastQuestion string
	lastFilename string

	onStatus  func()
	onAsk     func()
	onExtract func()
}

func (f *backendFake) CheckStatus(context.Context) (domain.StatusSnapshot, error) {
	f.statusCalls.Add(1)
	if f.onStatus != nil {
		f.onStatus()
	}
	if f.statusErr != nil {
		return domain.StatusSnapshot{}, f.statusErr
	}
	return f.status, nil
}

func (f *backendFake) UploadDocument(_ context.Context, filename string, _ io.Reader) (domain.UploadResult, error) {
	f.uploadCalls.Add(1)
	f.lastFilename = filename
	if f.uploadErr != nil {
		return domain.UploadResult{}, f.uploadErr
	}
	return f.upload, nil
}

func (f *backendFake) AskQuestion(_ context.Context, question string) (domain.Answer, error) {
	f.askCalls.Add(1)
	f.lastQuestion = question
	if f.onAsk != nil {
		f.onAsk()
	}
	if f.askErr != nil {
		return domain.Answer{}, f.askErr
	}
	return f.answer, nil
}

func (f *backendFake) ExtractData(context.Context) (domain.ExtractionResult, error) {
	f.extractCalls.Add(1)
	if f.onExtract != nil {
		f.onExtract()
	}
	if f.extractErr != nil {
		return domain.ExtractionResult{}, f.extractErr
	}
	return f.extraction, nil
}

func (f *backendFake) About(context.Context) (domain.APIInfo, error) {
	return domain.APIInfo{Message: "Ultra Doc-Intelligence API"}, nil
}

type notifierFake struct {
	successes []string
	errors    []string
}

func (n *notifierFake) Success(message string) { n.successes = append(n.successes, message) }
func (n *notifierFake) Error(message string)   { n.errors = append(n.errors, message) }
