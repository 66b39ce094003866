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

// Person is an actor that movies can be linked to.
type Person struct {
	ID          int64
	Name        string
	DateOfBirth Date
}

func ValidatePersonInput(v *validator.Validator, input PersonInput) {
	v.Check(input.Name != "", "Name", "must be provided")
	v.Check(len(input.Name) <= 500, "Name", "must not be more than 500 bytes long")

	v.Check(!input.DateOfBirth.IsZero(), "DateOfBirth", "must be provided")
	v.Check(input.DateOfBirth.Before(time.Now()), "DateOfBirth", "must not be in the future")
}

type PersonModel struct {
	DB *sql.DB
}

// GetAll uses the same skip/take window as MovieModel.GetAll.
func (m PersonModel) GetAll(pageIndex, pageSize int) ([]*Person, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var total int
	err := m.DB.QueryRowContext(ctx, `SELECT count(*) FROM people`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count people: %w", err)
	}

	query := `
        SELECT id, name, date_of_birth
        FROM people
        ORDER BY id
        LIMIT $1 OFFSET $2`

	people, err := m.query(ctx, query, pageSize, pageIndex)
	if err != nil {
		return nil, 0, err
	}

	return people, total, nil
}

func (m PersonModel) Get(id int64) (*Person, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
        SELECT id, name, date_of_birth
        FROM people
        WHERE id = $1`

	var person Person

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, id).Scan(&person.ID, &person.Name, &person.DateOfBirth)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get person %d: %w", id, err)
		}
	}

	return &person, nil
}

// GetByIDs returns the people whose id is in ids. Ids with no matching row are skipped, so callers
// compare the length of the result against the number of ids they asked for.
func (m PersonModel) GetByIDs(ids []int64) ([]*Person, error) {
	if len(ids) == 0 {
		return []*Person{}, nil
	}

	query := `
        SELECT id, name, date_of_birth
        FROM people
        WHERE id = ANY($1)
        ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return m.query(ctx, query, pq.Array(ids))
}

func (m PersonModel) query(ctx context.Context, query string, args ...any) ([]*Person, error) {
	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	people := []*Person{}
	for rows.Next() {
		var person Person
		if err := rows.Scan(&person.ID, &person.Name, &person.DateOfBirth); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, &person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}

	return people, nil
}

func (m PersonModel) Insert(person *Person) error {
	query := `
        INSERT INTO people (name, date_of_birth)
        VALUES ($1, $2)
        RETURNING id`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, person.Name, person.DateOfBirth).Scan(&person.ID)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}

	return nil
}

func (m PersonModel) Update(person *Person) error {
	query := `
        UPDATE people
        SET name = $1, date_of_birth = $2
        WHERE id = $3`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, person.Name, person.DateOfBirth, person.ID)
	if err != nil {
		return fmt.Errorf("update person %d: %w", person.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person %d: %w", person.ID, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Delete removes the person and, through ON DELETE CASCADE, their links to movies.
func (m PersonModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
