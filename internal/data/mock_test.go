package data

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModelsMirrorStoreBehaviour(t *testing.T) {
	models := NewMockModels()

	for _, name := range []string{"Al Pacino", "Robert De Niro", "Val Kilmer"} {
		require.NoError(t, models.People.Insert(&Person{Name: name, DateOfBirth: NewDate(1940, time.April, 25)}))
	}

	actors, err := models.People.GetByIDs([]int64{1, 2})
	require.NoError(t, err)

	movie := &Movie{Title: "Heat", Actors: actors}
	require.NoError(t, models.Movies.Insert(movie))
	assert.Equal(t, int64(1), movie.ID)

	removed, added := DiffActors(movie.ActorIDs(), []int64{2, 3})
	require.NoError(t, models.Movies.Update(movie, removed, added))

	got, err := models.Movies.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, got.ActorIDs())

	// Deleting a person drops the link but keeps the movie.
	require.NoError(t, models.People.Delete(3))
	got, err = models.Movies.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, got.ActorIDs())

	// Deleting the movie keeps the people.
	require.NoError(t, models.Movies.Delete(1))
	_, err = models.Movies.Get(1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, total, err := models.People.GetAll(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestMockMovieModelWindow(t *testing.T) {
	models := NewMockModels()
	for i := 0; i < 5; i++ {
		require.NoError(t, models.Movies.Insert(&Movie{Title: "m"}))
	}

	movies, total, err := models.Movies.GetAll(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(4), movies[0].ID)

	movies, total, err = models.Movies.GetAll(7, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, movies)

	// pageIndex+pageSize overflows int here.
	movies, _, err = models.Movies.GetAll(1, math.MaxInt)
	require.NoError(t, err)
	require.Len(t, movies, 4)
	assert.Equal(t, int64(2), movies[0].ID)
}
