package inference

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewPool_ModelNotFound(t *testing.T) {
	if _, err := NewPool("nonexistent/model.onnx", 2); err == nil {
		t.Fatal("expected error for nonexistent model file")
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 2)
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}

	s1, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	s2, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("second Acquire() failed: %v", err)
	}

	// Pool is drained; Acquire must honor context cancellation.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() on drained pool = %v, want DeadlineExceeded", err)
	}

	pool.Release(s1)
	pool.Release(s2)

	s3, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() after Release failed: %v", err)
	}
	pool.Release(s3)
}

func TestPool_SizeClamped(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 0)
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestPool_AcquireAfterClose(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close = %v, want ErrPoolClosed", err)
	}
}

func TestPool_ReleaseNil(t *testing.T) {
	pool := &Pool{sessions: make(chan *Session, 1)}
	pool.Release(nil) // must not panic or enqueue
	if len(pool.sessions) != 0 {
		t.Error("nil session must not be enqueued")
	}
}

func TestPool_CloseIdempotent(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
