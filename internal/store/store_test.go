package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpix/quizpix/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testBundle(name string, createdAt time.Time) quiz.Bundle {
	b := quiz.NewBundle(name, quiz.SourceExtracted, []quiz.Question{
		{ID: 1, Number: 1, Text: "First?", Options: []string{"a", "b", "c", "d"}, Answer: quiz.LetterB},
		{ID: 2, Number: 2, Text: "Second?", Options: []string{"a", "b", "c", "d"}, Answer: quiz.LetterD, Passage: "A passage."},
	})
	b.CreatedAt = createdAt
	return b
}

func TestBundleRepo_SaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.BundleRepo()
	ctx := context.Background()

	want := testBundle("midterm", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx, want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Source, got.Source)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, want.Questions[0].Text, got.Questions[0].Text)
	assert.Equal(t, want.Questions[1].Answer, got.Questions[1].Answer)
	assert.Equal(t, "A passage.", got.Questions[1].Passage)
}

func TestBundleRepo_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.BundleRepo()
	ctx := context.Background()

	b := testBundle("v1", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, b))

	b.Name = "v2"
	require.NoError(t, repo.Save(ctx, b))

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBundleRepo_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.BundleRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	older := testBundle("older", base.Add(-time.Hour))
	newer := testBundle("newer", base)
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Name)
	assert.Equal(t, "older", all[1].Name)

	// List omits question payloads.
	assert.Empty(t, all[0].Questions)
}

func TestBundleRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.BundleRepo().Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBundleRepo_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.BundleRepo()
	ctx := context.Background()

	b := testBundle("doomed", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, repo.Delete(ctx, b.ID))
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "probe", Success: true, LatencyMs: 120},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "bulk-generation", InputTokens: 900, OutputTokens: 2400, Success: true, LatencyMs: 4300, RequestBody: "prompt", ResponseBody: "reply"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "bulk-generation", Success: false, ErrorMessage: "rate limited", LatencyMs: 50},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMEvent(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Newest first.
	assert.Equal(t, "rate limited", all[0].ErrorMessage)
	assert.False(t, all[0].Success)
	assert.True(t, all[2].Success)

	bulk, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "bulk-generation"})
	require.NoError(t, err)
	assert.Len(t, bulk, 2)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEventRepo_GetWithBodies(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMEvent(ctx, LLMEventData{
		Provider:     "gemini",
		Model:        "gemini-flash",
		Purpose:      "extract-questions",
		Success:      true,
		RequestBody:  "the prompt",
		ResponseBody: "the reply",
	}))

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := repo.GetLLMEvent(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "the prompt", got.RequestBody)
	assert.Equal(t, "the reply", got.ResponseBody)

	_, err = repo.GetLLMEvent(ctx, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening an existing database must not fail on migration.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.BundleRepo().Save(context.Background(), testBundle("b", time.Now().UTC())))
}
