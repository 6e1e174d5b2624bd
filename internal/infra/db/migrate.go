package db

import "database/sql"

// MigrateUp creates the schema. All statements are idempotent so the
// migration can run at every startup.
func MigrateUp(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          VARCHAR(20) NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS publishers (
    id          SERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS publisher_editors (
    publisher_id INTEGER NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
    user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (publisher_id, user_id)
)`,
		`CREATE TABLE IF NOT EXISTS publisher_journalists (
    publisher_id INTEGER NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
    user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (publisher_id, user_id)
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    author_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    publisher_id INTEGER REFERENCES publishers(id) ON DELETE SET NULL,
    is_approved  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    published_at TIMESTAMPTZ
)`,
		`CREATE TABLE IF NOT EXISTS newsletters (
    id           SERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    author_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    publisher_id INTEGER REFERENCES publishers(id) ON DELETE SET NULL,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    published_at TIMESTAMPTZ
)`,
		`CREATE TABLE IF NOT EXISTS publisher_subscriptions (
    id            SERIAL PRIMARY KEY,
    reader_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    publisher_id  INTEGER NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
    subscribed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (reader_id, publisher_id)
)`,
		`CREATE TABLE IF NOT EXISTS journalist_subscriptions (
    id            SERIAL PRIMARY KEY,
    reader_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    journalist_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    subscribed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (reader_id, journalist_id)
)`,
	}
	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,
		// Listings order by created_at DESC, feeds by published_at DESC.
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_publisher_id ON articles(publisher_id)`,
		// Editor review queues scan pending drafts per publisher.
		`CREATE INDEX IF NOT EXISTS idx_articles_pending ON articles(publisher_id) WHERE is_approved = FALSE`,
		`CREATE INDEX IF NOT EXISTS idx_newsletters_created_at ON newsletters(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletters_published_at ON newsletters(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletters_author_id ON newsletters(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletters_pending ON newsletters(publisher_id) WHERE is_published = FALSE`,
		`CREATE INDEX IF NOT EXISTS idx_publisher_subscriptions_publisher ON publisher_subscriptions(publisher_id)`,
		`CREATE INDEX IF NOT EXISTS idx_journalist_subscriptions_journalist ON journalist_subscriptions(journalist_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Role constraint. Errors are ignored when the constraint already exists.
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_user_role'
    ) THEN
        ALTER TABLE users ADD CONSTRAINT chk_user_role
        CHECK (role IN ('reader', 'journalist', 'editor'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS journalist_subscriptions CASCADE`,
		`DROP TABLE IF EXISTS publisher_subscriptions CASCADE`,
		`DROP TABLE IF EXISTS newsletters CASCADE`,
		`DROP TABLE IF EXISTS articles CASCADE`,
		`DROP TABLE IF EXISTS publisher_journalists CASCADE`,
		`DROP TABLE IF EXISTS publisher_editors CASCADE`,
		`DROP TABLE IF EXISTS publishers CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
