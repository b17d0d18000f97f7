// Package sqlitetest opens an in-memory SQLite store with the catalog schema so
// repositories can be exercised through sqlx without a PostgreSQL server.
package sqlitetest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// schema mirrors db/schema.sql in SQLite's dialect. SQLite does not enforce VARCHAR
// lengths, so length checks are not observable here.
const schema = `
CREATE TABLE categories (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    name         VARCHAR(50)  NOT NULL,
    image_link   VARCHAR(250) NOT NULL,
    created_date TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_date TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE products (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    name              VARCHAR(50)   NOT NULL,
    sku               VARCHAR(10)   NOT NULL,
    category_id       INTEGER       NOT NULL REFERENCES categories (id),
    description       VARCHAR(250)  NOT NULL,
    large_description VARCHAR(500)  NOT NULL,
    price             NUMERIC       NOT NULL,
    discount_price    NUMERIC,
    discount_percent  INTEGER,
    is_new            BOOLEAN       NOT NULL DEFAULT 0,
    image_link        VARCHAR(250)  NOT NULL,
    other_images_link VARCHAR(1000),
    created_date      TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_date      TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// New returns a fresh database that is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open(driverName, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}
