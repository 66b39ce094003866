package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/myk4040okothogodo/moviecatalog/internal/validator"
)

// Movie is the stored aggregate. Responses are built from it by the view constructors in views.go.
type Movie struct {
	ID          int64
	CreatedAt   time.Time
	Title       string
	Description string
	Language    string
	ReleaseDate Date
	CoverImage  string
	Actors      []*Person
}

func ValidateMovieInput(v *validator.Validator, input MovieInput) {
	v.Check(input.Title != "", "Title", "must be provided")
	v.Check(len(input.Title) <= 500, "Title", "must not be more than 500 bytes long")

	v.Check(len(input.Description) <= 5000, "Description", "must not be more than 5000 bytes long")

	v.Check(input.Language != "", "Language", "must be provided")
	v.Check(len(input.Language) <= 100, "Language", "must not be more than 100 bytes long")

	v.Check(!input.ReleaseDate.IsZero(), "ReleaseDate", "must be provided")

	v.Check(len(input.CoverImage) <= 2000, "CoverImage", "must not be more than 2000 bytes long")

	v.Check(input.Actors != nil, "Actors", "must be provided")
}

// MovieModel wraps a sql.DB connection pool.
type MovieModel struct {
	DB *sql.DB
}

// GetAll returns pageSize movies after skipping pageIndex rows, ordered by id, with their actors loaded,
// together with the total number of movies.
func (m MovieModel) GetAll(pageIndex, pageSize int) ([]*Movie, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	// The count is taken separately so it is still correct when the window is past the last row.
	var total int
	err := m.DB.QueryRowContext(ctx, `SELECT count(*) FROM movies`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	query := `
        SELECT id, created_at, title, description, language, release_date, cover_image
        FROM movies
        ORDER BY id
        LIMIT $1 OFFSET $2`

	rows, err := m.DB.QueryContext(ctx, query, pageSize, pageIndex)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		var movie Movie

		err := rows.Scan(
			&movie.ID,
			&movie.CreatedAt,
			&movie.Title,
			&movie.Description,
			&movie.Language,
			&movie.ReleaseDate,
			&movie.CoverImage,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movie: %w", err)
		}

		movies = append(movies, &movie)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}

	if err := m.loadActors(ctx, movies); err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// Get returns the movie with the given id and its actors.
func (m MovieModel) Get(id int64) (*Movie, error) {
	// Serial ids start at 1, so there is no point in querying for anything lower.
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
        SELECT id, created_at, title, description, language, release_date, cover_image
        FROM movies
        WHERE id = $1`

	var movie Movie

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.CreatedAt,
		&movie.Title,
		&movie.Description,
		&movie.Language,
		&movie.ReleaseDate,
		&movie.CoverImage,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get movie %d: %w", id, err)
		}
	}

	if err := m.loadActors(ctx, []*Movie{&movie}); err != nil {
		return nil, err
	}

	return &movie, nil
}

// loadActors fills in the Actors field of every movie with a single query over the join table.
func (m MovieModel) loadActors(ctx context.Context, movies []*Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[int64]*Movie, len(movies))
	ids := make([]int64, 0, len(movies))
	for _, movie := range movies {
		movie.Actors = []*Person{}
		byID[movie.ID] = movie
		ids = append(ids, movie.ID)
	}

	query := `
        SELECT ma.movie_id, p.id, p.name, p.date_of_birth
        FROM movies_actors ma
        INNER JOIN people p ON p.id = ma.person_id
        WHERE ma.movie_id = ANY($1)
        ORDER BY ma.movie_id, p.id`

	rows, err := m.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load actors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			movieID int64
			person  Person
		)

		if err := rows.Scan(&movieID, &person.ID, &person.Name, &person.DateOfBirth); err != nil {
			return fmt.Errorf("scan actor: %w", err)
		}

		if movie, ok := byID[movieID]; ok {
			movie.Actors = append(movie.Actors, &person)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load actors: %w", err)
	}

	return nil
}

// Insert adds the movie and its actor links in one transaction. The ID and CreatedAt fields are
// filled in from the new row.
func (m MovieModel) Insert(movie *Movie) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert movie: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO movies (title, description, language, release_date, cover_image)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	args := []any{movie.Title, movie.Description, movie.Language, movie.ReleaseDate, movie.CoverImage}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&movie.ID, &movie.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}

	if err := linkActors(ctx, tx, movie.ID, movie.ActorIDs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert movie: %w", err)
	}

	return nil
}

// Update writes the movie's scalar fields, then unlinks the removed actors and links the added ones.
func (m MovieModel) Update(movie *Movie, removed, added []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update movie: %w", err)
	}
	defer tx.Rollback()

	query := `
        UPDATE movies
        SET title = $1, description = $2, language = $3, release_date = $4, cover_image = $5
        WHERE id = $6`

	args := []any{
		movie.Title,
		movie.Description,
		movie.Language,
		movie.ReleaseDate,
		movie.CoverImage,
		movie.ID,
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	if len(removed) > 0 {
		query := `DELETE FROM movies_actors WHERE movie_id = $1 AND person_id = ANY($2)`

		_, err := tx.ExecContext(ctx, query, movie.ID, pq.Array(removed))
		if err != nil {
			return fmt.Errorf("unlink actors from movie %d: %w", movie.ID, err)
		}
	}

	if err := linkActors(ctx, tx, movie.ID, added); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update movie %d: %w", movie.ID, err)
	}

	return nil
}

func linkActors(ctx context.Context, tx *sql.Tx, movieID int64, personIDs []int64) error {
	if len(personIDs) == 0 {
		return nil
	}

	query := `
        INSERT INTO movies_actors (movie_id, person_id)
        SELECT $1, unnest($2::bigint[])
        ON CONFLICT DO NOTHING`

	_, err := tx.ExecContext(ctx, query, movieID, pq.Array(personIDs))
	if err != nil {
		return fmt.Errorf("link actors to movie %d: %w", movieID, err)
	}

	return nil
}

// Delete removes the movie. Its join rows go with it through ON DELETE CASCADE; the people stay.
func (m MovieModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `
        DELETE FROM movies
        WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
