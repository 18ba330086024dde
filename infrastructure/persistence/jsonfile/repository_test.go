package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
)

func newThoughtRepo(t *testing.T, dir string) *ThoughtRepository {
	t.Helper()
	repo, err := NewThoughtRepository(dir, nil, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func newTaskRepo(t *testing.T, dir string) *TaskRepository {
	t.Helper()
	repo, err := NewTaskRepository(dir, nil, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func thoughtAt(id, content string, ts time.Time) *entities.Thought {
	tid, _ := valueobjects.NewThoughtIDFromString(id)
	return entities.ReconstructThought(tid, content, ts)
}

func TestNewRepositories_CreateEmptyFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	newThoughtRepo(t, dir)
	newTaskRepo(t, dir)

	for _, name := range []string{thoughtsFile, tasksFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
}

func TestThoughtRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ts := time.Date(2024, 3, 10, 9, 30, 15, 123456000, time.Local)

	require.NoError(t, newThoughtRepo(t, dir).Save(ctx, thoughtAt("t-1", "buy milk", ts)))

	// A fresh repository reads what the first one wrote.
	got, err := newThoughtRepo(t, dir).FindByID(ctx, thoughtAt("t-1", "", ts).ID())
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.ID().String())
	assert.Equal(t, "buy milk", got.Content())
	assert.True(t, got.Timestamp().Equal(ts))
}

func TestThoughtRepository_CorruptFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, thoughtsFile), []byte("{not json"), 0o644))

	repo := newThoughtRepo(t, dir)
	thoughts, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, thoughts)

	require.NoError(t, repo.Save(ctx, thoughtAt("t-1", "fresh start", time.Now())))
	thoughts, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, thoughts, 1)
}

func TestThoughtRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newThoughtRepo(t, t.TempDir())
	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

	thought := thoughtAt("t-1", "draft", ts)
	require.NoError(t, repo.Save(ctx, thought))
	require.NoError(t, repo.Save(ctx, thoughtAt("t-2", "other", ts)))

	thought.ReplaceContent("final")
	require.NoError(t, repo.Update(ctx, thought))

	got, err := repo.FindByID(ctx, thought.ID())
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content())

	require.NoError(t, repo.Delete(ctx, thought.ID()))
	_, err = repo.FindByID(ctx, thought.ID())
	assert.True(t, pkgerrors.IsNotFound(err))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "t-2", all[0].ID().String())
}

func TestThoughtRepository_MissingIDs(t *testing.T) {
	ctx := context.Background()
	repo := newThoughtRepo(t, t.TempDir())
	missing := thoughtAt("nope", "x", time.Now())

	tests := []struct {
		name string
		call func() error
	}{
		{"find", func() error { _, err := repo.FindByID(ctx, missing.ID()); return err }},
		{"update", func() error { return repo.Update(ctx, missing) }},
		{"delete", func() error { return repo.Delete(ctx, missing.ID()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, pkgerrors.IsNotFound(tt.call()))
		})
	}
}

func TestThoughtRepository_DeleteByDate(t *testing.T) {
	ctx := context.Background()
	repo := newThoughtRepo(t, t.TempDir())

	require.NoError(t, repo.Save(ctx, thoughtAt("a", "morning", time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local))))
	require.NoError(t, repo.Save(ctx, thoughtAt("b", "evening", time.Date(2024, 3, 10, 22, 0, 0, 0, time.Local))))
	require.NoError(t, repo.Save(ctx, thoughtAt("c", "next day", time.Date(2024, 3, 11, 8, 0, 0, 0, time.Local))))

	n, err := repo.DeleteByDate(ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.DeleteByDate(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Zero(t, n)

	left, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "c", left[0].ID().String())
}

func TestTaskRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	due := time.Date(2024, 4, 1, 17, 0, 0, 0, time.UTC)
	thought := thoughtAt("t-1", "source", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	linked := entities.NewTask("Write report", "quarterly", &due, thought.ID())
	linked.ToggleCompletion()
	orphan := entities.NewTask("Stretch", "", nil, valueobjects.ThoughtID{})

	require.NoError(t, newTaskRepo(t, dir).SaveAll(ctx, []*entities.Task{linked, orphan}))

	tasks, err := newTaskRepo(t, dir).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	got := tasks[0]
	assert.Equal(t, linked.ID(), got.ID())
	assert.Equal(t, "Write report", got.Title())
	assert.Equal(t, "quarterly", got.Description())
	assert.True(t, got.CreatedAt().Equal(linked.CreatedAt()))
	require.NotNil(t, got.DueDate())
	assert.True(t, got.DueDate().Equal(due))
	assert.True(t, got.IsCompleted())
	assert.Equal(t, "t-1", got.ThoughtID().String())

	assert.Nil(t, tasks[1].DueDate())
	assert.True(t, tasks[1].ThoughtID().IsZero())
	assert.False(t, tasks[1].IsCompleted())
}

func TestTaskRepository_WritesNullOptionalFields(t *testing.T) {
	dir := t.TempDir()
	task := entities.NewTask("Stretch", "", nil, valueobjects.ThoughtID{})
	require.NoError(t, newTaskRepo(t, dir).Save(context.Background(), task))

	data, err := os.ReadFile(filepath.Join(dir, tasksFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"due_date": null`)
	assert.Contains(t, string(data), `"thought_id": null`)
	assert.Contains(t, string(data), `"is_completed": false`)
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTaskRepo(t, t.TempDir())

	task := entities.NewTask("Old", "", nil, valueobjects.ThoughtID{})
	require.NoError(t, repo.Save(ctx, task))

	title := "New"
	task.Apply(entities.TaskChanges{Title: &title})
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title())

	require.NoError(t, repo.Delete(ctx, task.ID()))
	assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, task.ID())))
	assert.True(t, pkgerrors.IsNotFound(repo.Update(ctx, task)))
}
