package data

import (
	"sort"
	"sync"
	"time"
)

// mockCatalog is the in-memory state shared by MockMovieModel and MockPersonModel. It mirrors the
// behaviour of the PostgreSQL schema: serial ids starting at 1, a set-valued join, and cascading
// deletes of join rows.
type mockCatalog struct {
	mu           sync.Mutex
	movies       map[int64]Movie
	people       map[int64]Person
	actors       map[int64]map[int64]bool
	nextMovieID  int64
	nextPersonID int64
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		movies:       make(map[int64]Movie),
		people:       make(map[int64]Person),
		actors:       make(map[int64]map[int64]bool),
		nextMovieID:  1,
		nextPersonID: 1,
	}
}

// movie returns a copy of the stored movie with its actors attached. The caller holds the lock.
func (c *mockCatalog) movie(id int64) *Movie {
	movie := c.movies[id]

	ids := make([]int64, 0, len(c.actors[id]))
	for personID := range c.actors[id] {
		ids = append(ids, personID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	movie.Actors = make([]*Person, 0, len(ids))
	for _, personID := range ids {
		person := c.people[personID]
		movie.Actors = append(movie.Actors, &person)
	}

	return &movie
}

func window[T any](ids []int64, pageIndex, pageSize int, get func(int64) T) []T {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := []T{}
	if pageIndex < 0 || pageIndex >= len(ids) || pageSize <= 0 {
		return items
	}

	end := len(ids)
	if pageSize < end-pageIndex {
		end = pageIndex + pageSize
	}
	for _, id := range ids[pageIndex:end] {
		items = append(items, get(id))
	}
	return items
}

type MockMovieModel struct {
	catalog *mockCatalog
}

func (m MockMovieModel) GetAll(pageIndex, pageSize int) ([]*Movie, int, error) {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int64, 0, len(c.movies))
	for id := range c.movies {
		ids = append(ids, id)
	}

	return window(ids, pageIndex, pageSize, c.movie), len(ids), nil
}

func (m MockMovieModel) Get(id int64) (*Movie, error) {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.movies[id]; !ok {
		return nil, ErrRecordNotFound
	}
	return c.movie(id), nil
}

func (m MockMovieModel) Insert(movie *Movie) error {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	movie.ID = c.nextMovieID
	movie.CreatedAt = time.Now()
	c.nextMovieID++

	stored := *movie
	stored.Actors = nil
	c.movies[movie.ID] = stored

	c.actors[movie.ID] = make(map[int64]bool)
	for _, p := range movie.Actors {
		c.actors[movie.ID][p.ID] = true
	}

	return nil
}

func (m MockMovieModel) Update(movie *Movie, removed, added []int64) error {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.movies[movie.ID]
	if !ok {
		return ErrRecordNotFound
	}

	stored := *movie
	stored.CreatedAt = existing.CreatedAt
	stored.Actors = nil
	c.movies[movie.ID] = stored

	for _, id := range removed {
		delete(c.actors[movie.ID], id)
	}
	for _, id := range added {
		c.actors[movie.ID][id] = true
	}

	return nil
}

func (m MockMovieModel) Delete(id int64) error {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.movies[id]; !ok {
		return ErrRecordNotFound
	}

	delete(c.movies, id)
	delete(c.actors, id)

	return nil
}

type MockPersonModel struct {
	catalog *mockCatalog
}

func (m MockPersonModel) person(id int64) *Person {
	person := m.catalog.people[id]
	return &person
}

func (m MockPersonModel) GetAll(pageIndex, pageSize int) ([]*Person, int, error) {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int64, 0, len(c.people))
	for id := range c.people {
		ids = append(ids, id)
	}

	return window(ids, pageIndex, pageSize, m.person), len(ids), nil
}

func (m MockPersonModel) Get(id int64) (*Person, error) {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.people[id]; !ok {
		return nil, ErrRecordNotFound
	}
	return m.person(id), nil
}

func (m MockPersonModel) GetByIDs(ids []int64) ([]*Person, error) {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int64]bool, len(ids))
	people := []*Person{}
	for _, id := range ids {
		if _, ok := c.people[id]; ok && !seen[id] {
			seen[id] = true
			people = append(people, m.person(id))
		}
	}
	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })

	return people, nil
}

func (m MockPersonModel) Insert(person *Person) error {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	person.ID = c.nextPersonID
	c.nextPersonID++
	c.people[person.ID] = *person

	return nil
}

func (m MockPersonModel) Update(person *Person) error {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.people[person.ID]; !ok {
		return ErrRecordNotFound
	}
	c.people[person.ID] = *person

	return nil
}

func (m MockPersonModel) Delete(id int64) error {
	c := m.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.people[id]; !ok {
		return ErrRecordNotFound
	}

	delete(c.people, id)
	for _, linked := range c.actors {
		delete(linked, id)
	}

	return nil
}
