package dispatch

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/conversation"
)

// Runs only against a live database: set INTAKE_POSTGRES_TEST_DSN.
func TestPostgresRequestStoreSave(t *testing.T) {
	dsn := os.Getenv("INTAKE_POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("INTAKE_POSTGRES_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	store := NewPostgresRequestStore(pool)
	require.NoError(t, store.Migrate(ctx))

	dossier := conversation.Dossier{
		ID:             uuid.NewString(),
		UserID:         "42",
		DisplayName:    "ivan",
		Phone:          "+70000000000",
		FullName:       "Иван Иванов",
		SNILS:          "11223344595",
		LookupReport:   "Результаты поиска по номеру телефона:",
		DocumentReport: "Кредитная история: (данные не реализованы)",
		ReceivedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, dossier))

	var count int
	err = pool.QueryRow(ctx, "SELECT COUNT(*) FROM intake_requests WHERE id = $1", dossier.ID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
