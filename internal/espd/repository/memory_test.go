package repository

import (
	"context"
	"testing"

	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	d := &espd.Document{ProcedureTitle: "Road maintenance"}
	d.ActivateAllExclusionCriteria()
	id, err := r.Create(ctx, d)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Road maintenance", got.ProcedureTitle)
	require.True(t, got.ReadCriterion("fraud").GetExists())
	require.NotSame(t, d, got)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got.OJSNumber = "2021/S 100-123456"
	require.NoError(t, r.Update(ctx, got))
	got2, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "2021/S 100-123456", got2.OJSNumber)
	require.Equal(t, got.CreatedAt, got2.CreatedAt)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, id), ErrNotFound)
	require.ErrorIs(t, r.Update(ctx, &espd.Document{ID: id}), ErrNotFound)
}

func TestMemoryRepoKeepsCallerID(t *testing.T) {
	r := NewMemoryRepo()
	id, err := r.Create(context.Background(), &espd.Document{ID: "fixed"})
	require.NoError(t, err)
	require.Equal(t, "fixed", id)
}
