package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_scope TEXT NOT NULL,
		chain_id TEXT NOT NULL,
		address TEXT NOT NULL,
		label TEXT,
		provider TEXT,
		read_only BOOLEAN NOT NULL DEFAULT 1,
		is_primary BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_wallet_owner_address
		ON wallets (user_id, user_scope, address);`)
}

func createNonceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallet_nonces (
		token TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL DEFAULT 0,
		used_at DATETIME,
		created_at DATETIME
	);`)
}

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		name TEXT,
		password_hash TEXT,
		is_anonymous BOOLEAN NOT NULL DEFAULT 0,
		wallet_bootstrap BOOLEAN NOT NULL DEFAULT 0,
		bootstrap_address TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_profiles (
		id TEXT PRIMARY KEY,
		auth_user_id TEXT NOT NULL,
		scope TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_profile_auth_scope
		ON user_profiles (auth_user_id, scope);`)
}
