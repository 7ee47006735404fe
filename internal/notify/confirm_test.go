package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfirmerResolve(t *testing.T) {
	c := NewConfirmer()
	done := make(chan struct{})
	var answer bool
	var err error
	go func() {
		answer, err = c.Request(context.Background(), ConfirmOptions{Title: "¿Eliminar?", Destructive: true})
		close(done)
	}()

	id, opts, ok := waitPending(t, c)
	if !ok {
		t.Fatal("request never became pending")
	}
	if opts.ConfirmLabel != "Confirmar" {
		t.Fatalf("confirm label should default, got %q", opts.ConfirmLabel)
	}
	if err := c.Resolve(id, true); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	<-done
	if err != nil || !answer {
		t.Fatalf("caller should receive the answer: %v %v", answer, err)
	}

	if err := c.Resolve(id, true); !errors.Is(err, ErrUnknownRequest) {
		t.Fatalf("second resolve of the same id must fail, got %v", err)
	}
}

func TestConfirmerSecondRequestDisplacesFirst(t *testing.T) {
	c := NewConfirmer()
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Request(context.Background(), ConfirmOptions{Message: "first"})
		firstErr <- err
	}()
	waitPending(t, c)

	secondDone := make(chan struct{})
	go func() {
		answer, err := c.Request(context.Background(), ConfirmOptions{Message: "second"})
		if err != nil || answer {
			t.Errorf("second request: answer=%v err=%v", answer, err)
		}
		close(secondDone)
	}()

	if err := <-firstErr; !errors.Is(err, ErrReplaced) {
		t.Fatalf("displaced caller must get ErrReplaced, got %v", err)
	}

	id, opts, ok := c.Pending()
	if !ok || opts.Message != "second" {
		t.Fatalf("pending should be the second request: %+v", opts)
	}
	if err := c.Resolve(id, false); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	<-secondDone
}

func TestConfirmerContextCancel(t *testing.T) {
	c := NewConfirmer()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Request(ctx, ConfirmOptions{})
		errCh <- err
	}()
	waitPending(t, c)

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, _, ok := c.Pending(); ok {
		t.Fatal("canceled request must clear the pending slot")
	}
}

func waitPending(t *testing.T, c *Confirmer) (string, ConfirmOptions, bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if id, opts, ok := c.Pending(); ok {
			return id, opts, true
		}
		select {
		case <-deadline:
			return "", ConfirmOptions{}, false
		case <-time.After(time.Millisecond):
		}
	}
}
