package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ postsRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, post *Post) error {
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO post (title, body) VALUES ($1, $2) RETURNING id;`,
		post.Title, post.Body,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	if !rows.Next() {
		return errors.New("unexpected error, failed to insert post")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return fmt.Errorf("rows scan: %w", err)
	}

	post.Id = id
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Post, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, body FROM post WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrPostNotFound
	}

	var post Post
	if err := rows.Scan(&post.Id, &post.Title, &post.Body); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// List returns the posts satisfying the filter, ordered by id ascending,
// i.e. in insertion order.
func (r *Repo) List(ctx context.Context, filter Filter) ([]*Post, error) {
	query := `SELECT id, title, body FROM post`

	var conditions []string
	var args []any
	if filter.TitleLike != "" {
		args = append(args, filter.TitleLike)
		conditions = append(conditions, fmt.Sprintf(`title LIKE '%%' || $%d || '%%'`, len(args)))
	}
	if filter.BodyLike != "" {
		args = append(args, filter.BodyLike)
		conditions = append(conditions, fmt.Sprintf(`body LIKE '%%' || $%d || '%%'`, len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2posts(rows)
}

func (r *Repo) rows2posts(rows pgx.Rows) ([]*Post, error) {
	var postsList []*Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.Id, &post.Title, &post.Body); err != nil {
			return nil, err
		}
		postsList = append(postsList, &post)
	}
	return postsList, nil
}
