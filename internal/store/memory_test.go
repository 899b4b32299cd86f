package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s, err := NewMemoryStore(Config{})
	if err != nil {
		t.Fatalf("Failed to create memory store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	t.Run("Insert Contact", func(t *testing.T) {
		err := s.Insert(ctx, TableContacts, map[string]any{
			"name":    "Ada Lovelace",
			"email":   "ada@example.com",
			"subject": "Question",
			"message": "How do I submit a correction?",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Count(TableContacts))
	})

	t.Run("Insert Page View With Nulls", func(t *testing.T) {
		err := s.Insert(ctx, TablePageViews, map[string]any{
			"page_path":  "/posts/hello-world",
			"post_id":    "hello-world",
			"user_id":    nil,
			"session_id": nil,
		})
		require.NoError(t, err)

		rows := s.Rows(TablePageViews)
		require.Len(t, rows, 1)
		assert.Equal(t, "/posts/hello-world", rows[0]["page_path"])
		assert.Nil(t, rows[0]["user_id"])
	})

	t.Run("Duplicate Subscriber", func(t *testing.T) {
		err := s.Insert(ctx, TableSubscribers, map[string]any{"email": "reader@example.com"})
		require.NoError(t, err)

		err = s.Insert(ctx, TableSubscribers, map[string]any{"email": "reader@example.com"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicate), "expected ErrDuplicate, got %v", err)
		assert.Equal(t, 1, s.Count(TableSubscribers))

		// A different email still goes through
		err = s.Insert(ctx, TableSubscribers, map[string]any{"email": "other@example.com"})
		require.NoError(t, err)
	})

	t.Run("Unknown Table", func(t *testing.T) {
		err := s.Insert(ctx, "admin_users", map[string]any{"email": "x@example.com"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownTable))
	})

	t.Run("Unknown Column", func(t *testing.T) {
		err := s.Insert(ctx, TableContacts, map[string]any{
			"name":     "X",
			"email":    "x@example.com",
			"subject":  "S",
			"message":  "M",
			"is_admin": true,
		})
		require.Error(t, err)
		assert.Equal(t, 1, s.Count(TableContacts), "rejected insert must not persist")
	})

	t.Run("Empty Record", func(t *testing.T) {
		err := s.Insert(ctx, TableComments, map[string]any{})
		require.Error(t, err)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func TestMemoryStoreInsertCopiesRecord(t *testing.T) {
	s, err := NewMemoryStore(Config{})
	require.NoError(t, err)
	defer s.Close()

	record := map[string]any{"email": "mutable@example.com"}
	require.NoError(t, s.Insert(context.Background(), TableSubscribers, record))

	record["email"] = "changed@example.com"

	rows := s.Rows(TableSubscribers)
	require.Len(t, rows, 1)
	assert.Equal(t, "mutable@example.com", rows[0]["email"])
}

func TestMemoryStoreConcurrentInserts(t *testing.T) {
	s, err := NewMemoryStore(Config{})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Insert(ctx, TablePageViews, map[string]any{
				"page_path": fmt.Sprintf("/posts/%d", n),
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Count(TablePageViews))
}

func TestMemoryStoreCloseClearsData(t *testing.T) {
	s, err := NewMemoryStore(Config{})
	require.NoError(t, err)

	require.NoError(t, s.Insert(context.Background(), TableSubscribers, map[string]any{"email": "a@example.com"}))
	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Count(TableSubscribers))
}
