package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RobertLib/todo-api/validation"
)

// Store is the persistence boundary for todos. Each call has single-row
// atomic semantics; there are no multi-statement transactions. Lookups
// return (nil, nil) when no row matches.
type Store interface {
	Insert(ctx context.Context, userID int, title string, description *string) (*Todo, error)
	FindByID(ctx context.Context, id int) (*Todo, error)
	FindAllByOwner(ctx context.Context, userID int) ([]Todo, error)
	UpdatePartial(ctx context.Context, id int, changes *validation.UpdateTodoInput) (*Todo, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type pgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Store backed by a pgx connection pool.
func NewPgStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

const todoColumns = "id, user_id, title, description, completed, created_at, updated_at"

func scanTodo(row pgx.Row) (*Todo, error) {
	var todo Todo
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *pgStore) Insert(ctx context.Context, userID int, title string, description *string) (*Todo, error) {
	query := fmt.Sprintf(`INSERT INTO todos (user_id, title, description)
	          VALUES ($1, $2, $3)
	          RETURNING %s`, todoColumns)
	return scanTodo(s.pool.QueryRow(ctx, query, userID, title, description))
}

func (s *pgStore) FindByID(ctx context.Context, id int) (*Todo, error) {
	query := fmt.Sprintf(`SELECT %s FROM todos WHERE id = $1`, todoColumns)
	todo, err := scanTodo(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return todo, nil
}

func (s *pgStore) FindAllByOwner(ctx context.Context, userID int) ([]Todo, error) {
	query := fmt.Sprintf(`SELECT %s FROM todos WHERE user_id = $1 ORDER BY created_at DESC`, todoColumns)
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (s *pgStore) UpdatePartial(ctx context.Context, id int, changes *validation.UpdateTodoInput) (*Todo, error) {
	var setClauses []string
	var args []any
	argID := 1

	if changes.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *changes.Title)
		argID++
	}
	if changes.DescriptionSet {
		// Description may be set to NULL; a nil pointer here means clear.
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, changes.Description)
		argID++
	}
	if changes.Completed != nil {
		setClauses = append(setClauses, fmt.Sprintf("completed = $%d", argID))
		args = append(args, *changes.Completed)
		argID++
	}

	if len(setClauses) == 0 {
		// Unreachable through the service: the validator requires at least
		// one field. Kept as a safe fallback.
		return s.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE todos SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, todoColumns,
	)

	todo, err := scanTodo(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return todo, nil
}

func (s *pgStore) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
