package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the ledger schema.
// These run on startup to ensure tables exist. A "sheet" scopes a roster;
// the production roster and test rosters live on different sheets in the
// same database.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    sheet TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL,
    UNIQUE (sheet, name)
);

CREATE TABLE IF NOT EXISTS payment_status (
    member_id TEXT NOT NULL,
    period TEXT NOT NULL,
    status TEXT NOT NULL,
    PRIMARY KEY (member_id, period),
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_members_sheet ON members(sheet);
CREATE INDEX IF NOT EXISTS idx_payment_status_member_id ON payment_status(member_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
