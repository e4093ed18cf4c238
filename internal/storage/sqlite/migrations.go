package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: bills must be created before bill_items due to the foreign
// key constraint.
const schema = `
CREATE TABLE IF NOT EXISTS books (
    id TEXT PRIMARY KEY,
    isbn TEXT NOT NULL DEFAULT '',
    book_code TEXT NOT NULL DEFAULT '',
    book_name TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    publisher TEXT NOT NULL DEFAULT '',
    price REAL NOT NULL CHECK (price >= 0),
    quantity INTEGER NOT NULL CHECK (quantity >= 0)
);

CREATE TABLE IF NOT EXISTS bills (
    number TEXT PRIMARY KEY,
    issued_at INTEGER NOT NULL,
    subtotal REAL NOT NULL,
    discount_percent REAL NOT NULL,
    discount_amount REAL NOT NULL,
    total REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_items (
    bill_number TEXT NOT NULL,
    position INTEGER NOT NULL,
    book_id TEXT NOT NULL,
    book_name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    rate REAL NOT NULL,
    amount REAL NOT NULL,
    PRIMARY KEY (bill_number, position),
    FOREIGN KEY (bill_number) REFERENCES bills(number) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS clerks (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bill_items_bill_number ON bill_items(bill_number);
CREATE INDEX IF NOT EXISTS idx_bills_issued_at ON bills(issued_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
