package lockout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreLocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3, 60)

	for i := 0; i < 2; i++ {
		s.RecordFailure(ctx, "user@example.com")
	}
	locked, _ := s.IsLocked(ctx, "user@example.com")
	assert.False(t, locked)

	s.RecordFailure(ctx, "user@example.com")
	locked, retry := s.IsLocked(ctx, "user@example.com")
	assert.True(t, locked)
	assert.Greater(t, retry, 0)
}

func TestMemoryStoreSuccessClearsFailures(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3, 60)

	s.RecordFailure(ctx, "user@example.com")
	s.RecordFailure(ctx, "user@example.com")
	s.RecordSuccess(ctx, "user@example.com")
	s.RecordFailure(ctx, "user@example.com")

	locked, _ := s.IsLocked(ctx, "user@example.com")
	assert.False(t, locked)
}

func TestMemoryStoreKeyIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, 60)

	s.RecordFailure(ctx, "User@Example.com")
	s.RecordFailure(ctx, "user@example.com ")

	locked, _ := s.IsLocked(ctx, "USER@EXAMPLE.COM")
	assert.True(t, locked)
}

func TestMemoryStoreDisabled(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 60)

	for i := 0; i < 10; i++ {
		s.RecordFailure(ctx, "user@example.com")
	}
	locked, _ := s.IsLocked(ctx, "user@example.com")
	assert.False(t, locked)
}
