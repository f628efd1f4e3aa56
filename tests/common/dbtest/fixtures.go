//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"treebox/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestPassword is the plaintext every seeded account logs in with.
const TestPassword = "treebox-e2e-pass"

var (
	hashOnce     sync.Once
	passwordHash string
)

func testPasswordHash() string {
	hashOnce.Do(func() {
		var err error
		passwordHash, err = password.HashPassword(TestPassword)
		if err != nil {
			panic("failed to hash test password: " + err.Error())
		}
	})
	return passwordHash
}

func CreateTestAdmin(t *testing.T, db DBLike, email, displayName, role string) uuid.UUID {
	t.Helper()

	adminID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO admins (id, email, display_name, role, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (email) DO NOTHING`,
		adminID, email, displayName, role, testPasswordHash())
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM admins WHERE email = $1", email).Scan(&adminID)
	}

	return adminID
}

// inserts the room registry and staff accounts needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// The created_at offsets pin the registry order the dashboard shows.
	_, err := pool.Exec(ctx, `
		INSERT INTO rooms (id, name, short_code, icon, accent, created_at) VALUES
		    (gen_random_uuid(), 'BROWN WALLNUT', 'BW', 'cube',    '#c27541', now()),
		    (gen_random_uuid(), 'RED RUBY',      'RR', 'gem',     '#d63b52', now() + interval '1 ms'),
		    (gen_random_uuid(), 'BLUE DIAMONT',  'BD', 'diamond', '#1f7acb', now() + interval '2 ms'),
		    (gen_random_uuid(), 'GREY SAND',     'GS', 'layers',  '#8f949f', now() + interval '3 ms'),
		    (gen_random_uuid(), 'BLACK GOLD',    'BG', 'star',    '#c9a63a', now() + interval '4 ms')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO admins (id, email, display_name, role, password_hash, is_active) VALUES
		    (gen_random_uuid(), 'owner@treebox.id', 'Owner',      'super', $1, true),
		    (gen_random_uuid(), 'kasir@treebox.id', 'Siti Rahma', 'crew',  $1, true)
		ON CONFLICT (email) DO NOTHING;
	`, testPasswordHash())
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
