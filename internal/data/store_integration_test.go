//go:build integration

package data

import (
	"context"
	"database/sql"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupDatabase(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	migrations, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	sort.Strings(migrations)

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("movies"),
		tcpostgres.WithUsername("movies"),
		tcpostgres.WithPassword("pa55word"),
		tcpostgres.WithInitScripts(migrations...),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.PingContext(ctx))

	return db
}

func TestStoresAgainstPostgres(t *testing.T) {
	db := setupDatabase(t)
	models := NewModels(db)

	for _, name := range []string{"Actor A", "Actor B", "Actor C", "Actor D"} {
		require.NoError(t, models.People.Insert(&Person{Name: name, DateOfBirth: NewDate(1970, time.January, 1)}))
	}

	actors, err := models.People.GetByIDs([]int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, actors, 3)

	movie := &Movie{
		Title:       "Movie One",
		Language:    "English",
		ReleaseDate: NewDate(2000, time.May, 5),
		Actors:      actors,
	}
	require.NoError(t, models.Movies.Insert(movie))
	require.NotZero(t, movie.ID)

	removed, added := DiffActors(movie.ActorIDs(), []int64{2, 3, 4})
	assert.Equal(t, []int64{1}, removed)
	assert.Equal(t, []int64{4}, added)

	movie.Title = "Movie One (Director's Cut)"
	require.NoError(t, models.Movies.Update(movie, removed, added))

	got, err := models.Movies.Get(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Movie One (Director's Cut)", got.Title)
	assert.Equal(t, "2000-05-05", got.ReleaseDate.String())
	assert.Equal(t, []int64{2, 3, 4}, got.ActorIDs())

	for i := 0; i < 4; i++ {
		require.NoError(t, models.Movies.Insert(&Movie{Title: "Filler", Language: "English", ReleaseDate: NewDate(2001, time.May, 5), Actors: []*Person{}}))
	}

	page, total, err := models.Movies.GetAll(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 3)

	page, total, err = models.Movies.GetAll(10, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, page)

	require.NoError(t, models.Movies.Delete(movie.ID))
	assert.ErrorIs(t, models.Movies.Delete(movie.ID), ErrRecordNotFound)

	// People outlive the movies they were linked to.
	_, total, err = models.People.GetAll(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}
