package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"randomusers/internal/randomuser/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id::text, gender, first_name, last_name, location, email, phone, picture"

// ConnectPostgres opens a pgx pool for dsn.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

type PostgresUserRepository struct {
	Pool  *pgxpool.Pool
	table string
}

func NewPostgresUserRepository(pool *pgxpool.Pool, tableName string) *PostgresUserRepository {
	return &PostgresUserRepository{
		Pool:  pool,
		table: pgx.Identifier{tableName}.Sanitize(),
	}
}

func (r *PostgresUserRepository) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id         BIGSERIAL PRIMARY KEY,
	gender     VARCHAR(20)  NOT NULL,
	first_name VARCHAR(100) NOT NULL,
	last_name  VARCHAR(100) NOT NULL,
	location   JSONB        NOT NULL DEFAULT '{}'::jsonb,
	email      VARCHAR(100) NOT NULL,
	phone      VARCHAR(100) NOT NULL,
	picture    VARCHAR(200) NOT NULL
)`, r.table)
	if _, err := r.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}

// InsertBatch writes all users with one multi-row INSERT inside a transaction.
func (r *PostgresUserRepository) InsertBatch(ctx context.Context, users []*model.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	cols := []string{"gender", "first_name", "last_name", "location", "email", "phone", "picture"}
	placeholders := make([]string, 0, len(users))
	args := make([]any, 0, len(users)*len(cols))

	argi := 1
	for _, u := range users {
		location, err := encodeLocation(u.Location)
		if err != nil {
			return 0, err
		}
		args = append(args, u.Gender, u.FirstName, u.LastName, location, u.Email, u.Phone, u.Picture)

		ph := make([]string, 0, len(cols))
		for _, col := range cols {
			if col == "location" {
				ph = append(ph, fmt.Sprintf("$%d::jsonb", argi))
			} else {
				ph = append(ph, fmt.Sprintf("$%d", argi))
			}
			argi++
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ",")+")")
	}

	sql := "INSERT INTO " + r.table + " (" + strings.Join(cols, ",") + ") VALUES " +
		strings.Join(placeholders, ",") +
		" RETURNING id::text"

	ids := make([]string, 0, len(users))
	err := pgx.BeginFunc(ctx, r.Pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) != len(users) {
			return fmt.Errorf("inserted %d of %d rows", len(ids), len(users))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for i, id := range ids {
		users[i].ID = id
	}
	return len(ids), nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	row := r.Pool.QueryRow(ctx, "SELECT "+userColumns+" FROM "+r.table+" WHERE id = $1", pk)
	return scanUser(row)
}

func (r *PostgresUserRepository) FindPage(ctx context.Context, page, size int) ([]*model.User, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.Pool.Query(ctx,
		"SELECT "+userColumns+" FROM "+r.table+" ORDER BY id DESC LIMIT $1 OFFSET $2",
		size, offset(page, size),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.User, 0, size)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *PostgresUserRepository) FindRandom(ctx context.Context) (*model.User, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNotFound
	}
	row := r.Pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM "+r.table+" ORDER BY id LIMIT 1 OFFSET $1",
		rand.Int64N(total),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.Pool.QueryRow(ctx, "SELECT count(*) FROM "+r.table).Scan(&n)
	return n, err
}

func (r *PostgresUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	ct, err := r.Pool.Exec(ctx, "DELETE FROM "+r.table)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Gender, &u.FirstName, &u.LastName, &u.Location, &u.Email, &u.Phone, &u.Picture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func encodeLocation(location map[string]any) (string, error) {
	if location == nil {
		return "{}", nil
	}
	b, err := json.Marshal(location)
	if err != nil {
		return "", fmt.Errorf("encode location: %w", err)
	}
	return string(b), nil
}
