package data

// The types in this file are the request and response shapes of the HTTP API. Field names are
// PascalCase on the wire.

// MovieInput is the body of the create and update movie requests. ID is ignored on create.
type MovieInput struct {
	ID          int64   `json:"Id"`
	Title       string  `json:"Title"`
	Description string  `json:"Description"`
	Language    string  `json:"Language"`
	ReleaseDate Date    `json:"ReleaseDate"`
	CoverImage  string  `json:"CoverImage"`
	Actors      []int64 `json:"Actors"`
}

// Movie returns a new, unsaved movie holding the input's scalar fields. The caller assigns the actor set
// once it has checked that every requested person exists.
func (in MovieInput) Movie() *Movie {
	movie := &Movie{}
	in.Apply(movie)
	return movie
}

// Apply copies the input's scalar fields onto an existing movie. The id and actors are left alone.
func (in MovieInput) Apply(movie *Movie) {
	movie.Title = in.Title
	movie.Description = in.Description
	movie.Language = in.Language
	movie.ReleaseDate = in.ReleaseDate
	movie.CoverImage = in.CoverImage
}

type PersonInput struct {
	ID          int64  `json:"Id"`
	Name        string `json:"Name"`
	DateOfBirth Date   `json:"DateOfBirth"`
}

func (in PersonInput) Person() *Person {
	return &Person{
		ID:          in.ID,
		Name:        in.Name,
		DateOfBirth: in.DateOfBirth,
	}
}

type ActorSummary struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

type ActorView struct {
	ID          int64  `json:"Id"`
	Name        string `json:"Name"`
	DateOfBirth Date   `json:"DateOfBirth"`
}

// MovieListView is the shape of a movie in list responses and in the create response.
type MovieListView struct {
	ID          int64          `json:"Id"`
	Title       string         `json:"Title"`
	Language    string         `json:"Language"`
	ReleaseDate Date           `json:"ReleaseDate"`
	CoverImage  string         `json:"CoverImage"`
	Actors      []ActorSummary `json:"Actors"`
}

type MovieDetailView struct {
	ID          int64       `json:"Id"`
	Title       string      `json:"Title"`
	Description string      `json:"Description"`
	Language    string      `json:"Language"`
	ReleaseDate Date        `json:"ReleaseDate"`
	CoverImage  string      `json:"CoverImage"`
	Actors      []ActorView `json:"Actors"`
}

func NewActorView(p *Person) ActorView {
	return ActorView{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
	}
}

func NewActorViews(people []*Person) []ActorView {
	views := make([]ActorView, 0, len(people))
	for _, p := range people {
		views = append(views, NewActorView(p))
	}
	return views
}

func NewMovieListView(m *Movie) MovieListView {
	actors := make([]ActorSummary, 0, len(m.Actors))
	for _, p := range m.Actors {
		actors = append(actors, ActorSummary{ID: p.ID, Name: p.Name})
	}

	return MovieListView{
		ID:          m.ID,
		Title:       m.Title,
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate,
		CoverImage:  m.CoverImage,
		Actors:      actors,
	}
}

func NewMovieListViews(movies []*Movie) []MovieListView {
	views := make([]MovieListView, 0, len(movies))
	for _, m := range movies {
		views = append(views, NewMovieListView(m))
	}
	return views
}

func NewMovieDetailView(m *Movie) MovieDetailView {
	return MovieDetailView{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate,
		CoverImage:  m.CoverImage,
		Actors:      NewActorViews(m.Actors),
	}
}
