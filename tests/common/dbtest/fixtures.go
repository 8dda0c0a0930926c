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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Slot configurations seeded for every test database. Tests that need
// different capacities update the row in place.
const (
	BannerCapacity  = 1
	ProductCapacity = 2
	ShopCapacity    = 2

	BannerChargeCents  = 10000
	ProductChargeCents = 2500
	ShopChargeCents    = 1500
)

func CreateTestProduct(t *testing.T, db DBLike, merchantID, categoryID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO products (id, merchant_id, category_id, name) VALUES ($1, $2, $3, $4)",
		productID, merchantID, categoryID, name)
	require.NoError(t, err)

	return productID
}

func CreateTestShop(t *testing.T, db DBLike, merchantID, shopTypeID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	shopID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO shops (id, merchant_id, shop_type_id, name) VALUES ($1, $2, $3, $4)",
		shopID, merchantID, shopTypeID, name)
	require.NoError(t, err)

	return shopID
}

func SetSlotCapacity(t *testing.T, db DBLike, promotionType string, capacity int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE slot_configs SET daily_capacity = $1, updated_at = NOW() WHERE promotion_type = $2",
		capacity, promotionType)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO slot_configs (promotion_type, daily_capacity, daily_charge_cents) VALUES
		    ('banner', %d, %d),
		    ('product', %d, %d),
		    ('shop', %d, %d)
		ON CONFLICT (promotion_type) DO NOTHING;
	`, BannerCapacity, BannerChargeCents, ProductCapacity, ProductChargeCents, ShopCapacity, ShopChargeCents))
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
