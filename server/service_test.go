package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	listenErr error
	stop      chan struct{}
	once      sync.Once
	shutdowns int
}

func newFakeListener(listenErr error) *fakeListener {
	return &fakeListener{listenErr: listenErr, stop: make(chan struct{})}
}

func (f *fakeListener) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeListener) Shutdown(context.Context) error {
	f.shutdowns++
	f.once.Do(func() { close(f.stop) })
	return nil
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	l := newFakeListener(nil)
	svc := NewHTTPService("test", l, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
	assert.Equal(t, 1, l.shutdowns)
	assert.Equal(t, "test", svc.String())
}

func TestHTTPService_ListenError(t *testing.T) {
	svc := NewHTTPService("test", newFakeListener(errors.New("address already in use")), 0)

	err := svc.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}

func TestSupervise_StopsOnCancel(t *testing.T) {
	l := newFakeListener(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Supervise(ctx, "test", NewHTTPService("http", l, time.Second)) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
}
