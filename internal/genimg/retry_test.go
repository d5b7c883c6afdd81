package genimg

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetrySucceedsAfterTransientError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}},
		MockResponse{Image: &Image{MIMEType: "image/png", Data: pngStub}},
	)
	p := WithRetry(mock, fastRetry(3))

	img, err := p.Generate(context.Background(), "Axolotl")
	if err != nil {
		t.Fatal(err)
	}
	if img.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", img.MIMEType)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	failure := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	mock := NewMockProvider(failure, failure, failure, failure)
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), "Quokka")
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetryInvalidImageOnlyOnce(t *testing.T) {
	invalid := MockResponse{Err: &ErrInvalidImage{Err: errors.New("empty payload")}}
	mock := NewMockProvider(invalid, invalid, invalid)
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), "Narwhal")
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2 (one retry for invalid payloads)", mock.CallCount())
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), "Lynx")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		MockResponse{Image: &Image{MIMEType: "image/png", Data: pngStub}},
	)
	p := WithRetry(mock, fastRetry(3))

	if _, err := p.Generate(context.Background(), "Puffin"); err != nil {
		t.Fatal(err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}
