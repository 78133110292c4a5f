package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogEditor_SlugFollowsTitleUntilSet(t *testing.T) {
	e := NewBlogEditor(nil)
	e.SetTitle("Hello, World! 2024")
	assert.Equal(t, "hello-world-2024", e.Slug())

	e.SetSlug("My-Custom")
	e.SetTitle("Another title")
	assert.Equal(t, "my-custom", e.Slug())

	e.SetSlug("")
	e.SetTitle("Back to auto")
	assert.Equal(t, "back-to-auto", e.Slug())
}

func TestBlogEditor_ExistingSlugIsKept(t *testing.T) {
	e := NewBlogEditor(&models.Blog{Title: "Old", Slug: "old-post", Content: "x"})
	e.SetTitle("New title")

	in, err := e.Input()
	require.NoError(t, err)
	assert.Equal(t, "old-post", *in.Slug)
	assert.Equal(t, "New title", *in.Title)
}

func TestBlogEditor_InputValidation(t *testing.T) {
	e := NewBlogEditor(nil)
	_, err := e.Input()
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.EqualError(t, err, "Title is required")

	e.SetTitle("T")
	_, err = e.Input()
	assert.EqualError(t, err, "Content is required")

	e.Content = "<p>body</p>"
	e.SetTags(" go, ,web ,")
	in, err := e.Input()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, *in.Tags)
	assert.Equal(t, "t", *in.Slug)
}

func TestBlogManager_ChangesApplyOnlyAfterServerAccepts(t *testing.T) {
	ctx := context.Background()
	api := &fakeBlogsAPI{pages: map[string]models.BlogPage{
		"": {Items: []models.Blog{{BlogID: "b1", Title: "One", Slug: "one"}}},
	}}
	m := NewBlogManager(api)
	require.NoError(t, m.Load(ctx))
	assert.Equal(t, ManageListLimit, api.listCalls[0].Limit)

	e := NewBlogEditor(nil)
	e.SetTitle("Two")
	e.Content = "x"

	api.createErr = &client.APIError{StatusCode: 409, Message: "Slug already exists"}
	_, err := m.Create(ctx, e)
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Len(t, m.Posts(), 1, "no optimistic insert")

	api.createErr = nil
	created, err := m.Create(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.BlogID)
	assert.Equal(t, "new-id", m.Posts()[0].BlogID)

	edit := NewBlogEditor(&m.Posts()[1])
	edit.SetTitle("One, renamed")
	edit.Content = "y"
	_, err = m.Update(ctx, "b1", edit)
	require.NoError(t, err)
	got, ok := m.Find("b1")
	require.True(t, ok)
	assert.Equal(t, "One, renamed", got.Title)

	api.deleteErr = &client.APIError{StatusCode: 500}
	require.Error(t, m.Delete(ctx, "b1", func() bool { return true }))
	assert.Len(t, m.Posts(), 2)

	api.deleteErr = nil
	assert.ErrorIs(t, m.Delete(ctx, "b1", func() bool { return false }), ErrNotConfirmed)
	require.NoError(t, m.Delete(ctx, "b1", func() bool { return true }))
	assert.Len(t, m.Posts(), 1)
	assert.Equal(t, []string{"b1", "b1"}, api.deleted)
}

func TestBlogManager_InvalidEditorIsNotSent(t *testing.T) {
	api := &fakeBlogsAPI{}
	m := NewBlogManager(api)

	_, err := m.Create(context.Background(), NewBlogEditor(nil))
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, api.created)
}
