package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/tradevault/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateUserTable()
	migrateTradeTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		is_email_verified BOOLEAN DEFAULT FALSE,
		email_verification_token TEXT,
		email_verification_token_expires_at TIMESTAMP,
		commission_per_contract REAL DEFAULT 0,
		currency_symbol TEXT DEFAULT '$',
		timezone TEXT DEFAULT 'America/Chicago',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		user_agent TEXT,
		client_ip TEXT,
		is_blocked BOOLEAN DEFAULT FALSE,
		expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS broker_mappings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		broker_name TEXT NOT NULL,
		field_map TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id),
		UNIQUE(user_id, broker_name)
	);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		entry_time TEXT NOT NULL,
		exit_time TEXT NOT NULL,
		ticker TEXT NOT NULL,
		direction TEXT NOT NULL,
		contracts INTEGER NOT NULL,
		profit_loss REAL NOT NULL,
		commission_per_contract REAL NOT NULL,
		net_profit REAL NOT NULL,
		duration_seconds INTEGER,
		notes TEXT,
		strategy_id INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_trades_user_date ON trades(user_id, date);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// tableColumns returns the existing column names of a table, or nil when the
// table does not exist yet (creation will handle it).
func tableColumns(table string) map[string]bool {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("Table does not exist, no migration needed as table will be created.", "table", table)
			} else {
				stdlog.Printf("Table '%s' does not exist, no migration needed as table will be created.", table)
			}
			return nil
		}
		if logger.L != nil {
			logger.L.Error("Error checking for table", "table", table, "error", err)
		} else {
			stdlog.Printf("Error checking for table '%s': %v", table, err)
		}
		return nil
	}

	rows, err := DB.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema", "table", table, "error", err)
		} else {
			stdlog.Printf("Error querying table schema for '%s': %v", table, err)
		}
		return nil
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info", "table", table, "error", err)
			} else {
				stdlog.Printf("Error scanning column info for '%s': %v", table, err)
			}
			return nil
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info", "table", table, "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for '%s': %v", table, err)
		}
		return nil
	}
	return columnExists
}

func addColumn(table, column, definition string) {
	_, err := DB.Exec("ALTER TABLE " + table + " ADD COLUMN " + column + " " + definition)
	if err != nil {
		logger.L.Error("Error adding column", "table", table, "column", column, "error", err)
	} else {
		logger.L.Info("Added column", "table", table, "column", column)
	}
}

func migrateUserTable() {
	columnExists := tableColumns("users")
	if columnExists == nil {
		return
	}

	if !columnExists["email"] {
		addColumn("users", "email", "TEXT NOT NULL DEFAULT ''")
	}
	if !columnExists["is_email_verified"] {
		addColumn("users", "is_email_verified", "BOOLEAN DEFAULT FALSE")
	}
	if !columnExists["email_verification_token"] {
		addColumn("users", "email_verification_token", "TEXT")
	}
	if !columnExists["email_verification_token_expires_at"] {
		addColumn("users", "email_verification_token_expires_at", "TIMESTAMP")
	}

	// Journal settings columns. Older databases predate per-user settings.
	if !columnExists["commission_per_contract"] {
		addColumn("users", "commission_per_contract", "REAL DEFAULT 0")
	}
	if !columnExists["currency_symbol"] {
		addColumn("users", "currency_symbol", "TEXT DEFAULT '$'")
	}
	if !columnExists["timezone"] {
		addColumn("users", "timezone", "TEXT DEFAULT 'America/Chicago'")
	}

	if !columnExists["created_at"] {
		addColumn("users", "created_at", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
	}
	if !columnExists["updated_at"] {
		addColumn("users", "updated_at", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
	}
}

func migrateTradeTable() {
	columnExists := tableColumns("trades")
	if columnExists == nil {
		return
	}

	if !columnExists["duration_seconds"] {
		addColumn("trades", "duration_seconds", "INTEGER")
		// Backfill from the stored instants so older rows keep a usable duration.
		_, errUpdate := DB.Exec(`UPDATE trades SET duration_seconds = CAST((julianday(exit_time) - julianday(entry_time)) * 86400 AS INTEGER) WHERE duration_seconds IS NULL`)
		if errUpdate != nil {
			if logger.L != nil {
				logger.L.Error("Error backfilling duration_seconds for existing rows", "error", errUpdate)
			} else {
				stdlog.Printf("Error backfilling duration_seconds for existing rows: %v", errUpdate)
			}
		}
	}
	if !columnExists["notes"] {
		addColumn("trades", "notes", "TEXT")
	}
	if !columnExists["strategy_id"] {
		addColumn("trades", "strategy_id", "INTEGER")
	}
}
