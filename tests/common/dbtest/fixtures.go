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

// Fixture IDs used by SeedReferenceData so tests can reference the seeded
// catalog without querying for it first.
var (
	DefaultBarberID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	DefaultServiceID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func CreateTestBarber(t *testing.T, db DBLike, name string, openMin, closeMin int, closedDays int16) uuid.UUID {
	t.Helper()

	barberID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO barbers (id, name, location, open_min, close_min, closed_days) VALUES ($1, $2, '', $3, $4, $5)",
		barberID, name, openMin, closeMin, closedDays)
	require.NoError(t, err)

	return barberID
}

func CreateTestService(t *testing.T, db DBLike, barberID uuid.UUID, name string, durationMin int, priceCents int64) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO services (id, barber_id, name, duration_min, price_cents) VALUES ($1, $2, $3, $4, $5)",
		serviceID, barberID, name, durationMin, priceCents)
	require.NoError(t, err)

	return serviceID
}

func CreateTestBooking(t *testing.T, db DBLike, barberID, serviceID, customerID uuid.UUID, slotStart, slotEnd time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, barber_id, service_id, customer_id, slot_start, slot_end, status) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		bookingID, barberID, serviceID, customerID, slotStart, slotEnd, status)
	require.NoError(t, err)

	return bookingID
}

// ExpireHold backdates a hold's TTL so the booking reads as expired.
func ExpireHold(t *testing.T, db DBLike, bookingID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE bookings SET hold_expires_at = now() - interval '1 minute' WHERE id = $1", bookingID)
	require.NoError(t, err)
}

// MarkBookingCompleted forces a booking into the completed state directly,
// standing in for the sweeper's completion pass.
func MarkBookingCompleted(t *testing.T, db DBLike, bookingID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE bookings SET status = 'completed', updated_at = now() WHERE id = $1", bookingID)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// Open 09:00-17:30, closed Sundays (bit 0)
	_, err := pool.Exec(ctx, `
		INSERT INTO barbers (id, name, location, open_min, close_min, closed_days) VALUES
		    ($1, 'Fade Masters', 'Downtown', 540, 1050, 1)
		ON CONFLICT (id) DO NOTHING;
	`, DefaultBarberID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO services (id, barber_id, name, description, duration_min, price_cents) VALUES
		    ($1, $2, 'Classic Haircut', 'Scissor cut with wash', 30, 2500)
		ON CONFLICT (id) DO NOTHING;
	`, DefaultServiceID, DefaultBarberID)
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
