package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database. These run on
// startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- creator_id and borrower_id are chat identities; they are not required to
-- map to a registered account.
CREATE TABLE IF NOT EXISTS expense_requests (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    total_amount INTEGER NOT NULL,
    creator_id TEXT NOT NULL,
    creator_included INTEGER NOT NULL,
    chat_id TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS debt_records (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL,
    creator_id TEXT NOT NULL,
    borrower_id TEXT NOT NULL,
    amount_owed INTEGER NOT NULL,
    creator_included INTEGER NOT NULL,
    status TEXT NOT NULL,
    chat_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (request_id) REFERENCES expense_requests(id)
);

CREATE INDEX IF NOT EXISTS idx_debt_records_chat_id ON debt_records(chat_id);
CREATE INDEX IF NOT EXISTS idx_debt_records_creator_id ON debt_records(creator_id);
CREATE INDEX IF NOT EXISTS idx_debt_records_borrower_id ON debt_records(borrower_id);
CREATE INDEX IF NOT EXISTS idx_debt_records_updated_at ON debt_records(updated_at);
CREATE INDEX IF NOT EXISTS idx_expense_requests_chat_id ON expense_requests(chat_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
