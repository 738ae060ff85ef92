//go:build integration_test || all_tests

package posts

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristjin/posts/internal/db"
)

func testRepoSetup(t *testing.T) (*Repo, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postgres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         "5432",
		DBName:         "posts",
		TracingEnabled: false,
	})
	require.NoError(t, err)

	return NewRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestRepo_AddGetDelete(t *testing.T) {
	ctx := context.Background()
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	post := &Post{
		Title: gofakeit.Sentence(3),
		Body:  gofakeit.Paragraph(1, 2, 5, " "),
	}
	require.NoError(t, repo.Add(ctx, post))
	require.NotZero(t, post.Id)

	gotPost, err := repo.Get(ctx, post.Id)
	require.NoError(t, err)
	assert.Equal(t, post.Id, gotPost.Id)
	assert.Equal(t, post.Title, gotPost.Title)
	assert.Equal(t, post.Body, gotPost.Body)

	require.NoError(t, repo.Delete(ctx, post.Id))

	_, err = repo.Get(ctx, post.Id)
	assert.ErrorIs(t, err, ErrPostNotFound)

	err = repo.Delete(ctx, post.Id)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRepo_List(t *testing.T) {
	ctx := context.Background()
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	// unique marker so the test is not confused by leftover rows
	marker := gofakeit.LetterN(16)

	p1 := &Post{Title: "go " + marker, Body: "alpha " + marker}
	p2 := &Post{Title: "go " + marker, Body: "beta " + marker}
	p3 := &Post{Title: "rust " + marker, Body: "alpha " + marker}
	for _, post := range []*Post{p1, p2, p3} {
		require.NoError(t, repo.Add(ctx, post))
		defer func(id int) {
			assert.NoError(t, repo.Delete(ctx, id))
		}(post.Id)
	}

	postsList, err := repo.List(ctx, Filter{TitleLike: marker})
	require.NoError(t, err)
	require.Len(t, postsList, 3)

	// id ascending
	assert.Equal(t, p1.Id, postsList[0].Id)
	assert.Equal(t, p2.Id, postsList[1].Id)
	assert.Equal(t, p3.Id, postsList[2].Id)

	postsList, err = repo.List(ctx, Filter{TitleLike: "go " + marker, BodyLike: "alpha"})
	require.NoError(t, err)
	require.Len(t, postsList, 1)
	assert.Equal(t, p1.Id, postsList[0].Id)

	postsList, err = repo.List(ctx, Filter{TitleLike: "zig " + marker})
	require.NoError(t, err)
	assert.Empty(t, postsList)
}
