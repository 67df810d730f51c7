package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// Postgres backs the blog, profile, and user tables. Schema lives in
// migrations/0001_init.sql.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ core.BlogStore    = (*Postgres)(nil)
	_ core.ProfileStore = (*Postgres)(nil)
	_ core.UserStore    = (*Postgres)(nil)
)

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: pinging postgres: %v", core.ErrUpstreamUnavailable, err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// storeErr classifies driver failures: missing rows stay ErrNotFound,
// everything else (connection loss, statement timeouts, cancelled
// contexts) is a retryable upstream failure.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return core.ErrNotFound
	default:
		return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}
}

const blogColumns = `id, title, content, coalesce(image_url, ''), author_id, author_email,
	coalesce(twitter_handle, ''), coalesce(linkedin_handle, ''), is_admin_post, created_at, updated_at`

func scanBlog(row pgx.Row) (*core.BlogPost, error) {
	var post core.BlogPost
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.ImageURL,
		&post.AuthorID, &post.AuthorEmail,
		&post.TwitterHandle, &post.LinkedinHandle,
		&post.IsAdminPost, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	return &post, nil
}

func (p *Postgres) CreateBlog(ctx context.Context, post *core.BlogPost) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO blogs (id, title, content, image_url, author_id, author_email,
			twitter_handle, linkedin_handle, is_admin_post, created_at, updated_at)
		VALUES ($1, $2, $3, nullif($4, ''), $5, $6, nullif($7, ''), nullif($8, ''), $9, $10, $11)`,
		post.ID, post.Title, post.Content, post.ImageURL,
		post.AuthorID, post.AuthorEmail,
		post.TwitterHandle, post.LinkedinHandle,
		post.IsAdminPost, post.CreatedAt, post.UpdatedAt,
	)
	return storeErr(err)
}

func (p *Postgres) GetBlog(ctx context.Context, id string) (*core.BlogPost, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	return scanBlog(row)
}

func (p *Postgres) ListBlogs(ctx context.Context, filter core.BlogFilter) ([]core.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs`
	args := []any{}

	switch {
	case filter.AuthorID != "":
		query += ` WHERE author_id = $1`
		args = append(args, filter.AuthorID)
	case filter.AdminOnly:
		query += ` WHERE is_admin_post`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	posts := make([]core.BlogPost, 0)
	for rows.Next() {
		post, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, storeErr(rows.Err())
}

func (p *Postgres) UpdateBlog(ctx context.Context, post *core.BlogPost) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE blogs
		SET title = $2, content = $3, image_url = nullif($4, ''),
			twitter_handle = nullif($5, ''), linkedin_handle = nullif($6, ''), updated_at = $7
		WHERE id = $1`,
		post.ID, post.Title, post.Content, post.ImageURL,
		post.TwitterHandle, post.LinkedinHandle, post.UpdatedAt,
	)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteBlog(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (p *Postgres) GetProfile(ctx context.Context, id string) (*core.Profile, error) {
	var profile core.Profile
	err := p.pool.QueryRow(ctx, `
		SELECT id, coalesce(email, ''), coalesce(name, ''), coalesce(bio, ''),
			coalesce(profile_image, ''), updated_at
		FROM user_profiles WHERE id = $1`, id).
		Scan(&profile.ID, &profile.Email, &profile.Name, &profile.Bio,
			&profile.ProfileImageURL, &profile.UpdatedAt)
	if err != nil {
		return nil, storeErr(err)
	}
	return &profile, nil
}

func (p *Postgres) UpsertProfile(ctx context.Context, profile *core.Profile) error {
	// one row per principal; concurrent writers resolve
	// last-write-wins inside Postgres
	_, err := p.pool.Exec(ctx, `
		INSERT INTO user_profiles (id, email, name, bio, profile_image, updated_at)
		VALUES ($1, nullif($2, ''), nullif($3, ''), nullif($4, ''), nullif($5, ''), $6)
		ON CONFLICT (id) DO UPDATE
		SET email = coalesce(excluded.email, user_profiles.email),
			name = excluded.name,
			bio = excluded.bio,
			profile_image = coalesce(excluded.profile_image, user_profiles.profile_image),
			updated_at = excluded.updated_at`,
		profile.ID, profile.Email, profile.Name, profile.Bio,
		profile.ProfileImageURL, profile.UpdatedAt,
	)
	return storeErr(err)
}

func (p *Postgres) CreateUser(ctx context.Context, user *core.User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	return storeErr(err)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	var user core.User
	err := p.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

func (p *Postgres) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
