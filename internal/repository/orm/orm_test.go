package orm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
)

func openTestDB(t *testing.T, opts MigrateOptions) *DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Dialect:    config.DialectSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nutri-test.db"),
		LogLevel:   "silent",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db, opts))
	return db
}

func patientValues(name string) repository.Values {
	now := time.Now().UTC()
	return repository.Values{
		"id":         uuid.New(),
		"full_name":  name,
		"active":     true,
		"created_at": now,
		"updated_at": now,
	}
}

func TestTableCRUD(t *testing.T) {
	ctx := context.Background()
	table := NewTable[model.Patient](openTestDB(t, MigrateOptions{}), model.TablePatients)

	created, err := table.Insert(ctx, patientValues("Ana López"))
	require.NoError(t, err)
	assert.Equal(t, "Ana López", created.FullName)
	assert.True(t, created.Active)

	_, err = table.Insert(ctx, patientValues("Bruno Díaz"))
	require.NoError(t, err)

	rows, err := table.Find(ctx, repository.NewQuery().OrderBy(repository.Asc("full_name")))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana López", rows[0].FullName)

	n, err := table.Update(ctx, repository.NewQuery().Eq("id", created.ID), repository.Values{"goals": "run 5k"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := table.First(ctx, repository.NewQuery().Eq("id", created.ID))
	require.NoError(t, err)
	require.NotNil(t, got.Goals)
	assert.Equal(t, "run 5k", *got.Goals)

	n, err = table.Delete(ctx, repository.NewQuery().Eq("id", created.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = table.First(ctx, repository.NewQuery().Eq("id", created.ID))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	table := NewTable[model.Patient](openTestDB(t, MigrateOptions{}), model.TablePatients)

	for _, name := range []string{"100% organic", "1000 fans", "snake_case", "snakeXcase"} {
		_, err := table.Insert(ctx, patientValues(name))
		require.NoError(t, err)
	}

	rows, err := table.Find(ctx, repository.NewQuery().Search("100%", "full_name"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100% organic", rows[0].FullName)

	rows, err = table.Find(ctx, repository.NewQuery().Search("KE_C", "full_name"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "snake_case", rows[0].FullName)
}

func TestUniqueViolationKeepsSQLState(t *testing.T) {
	ctx := context.Background()
	table := NewTable[model.Nutritionist](openTestDB(t, MigrateOptions{}), model.TableNutritionists)

	values := func() repository.Values {
		now := time.Now().UTC()
		return repository.Values{
			"id": uuid.New(), "email": "dup@example.com", "full_name": "Dup",
			"password_hash": "x", "created_at": now, "updated_at": now,
		}
	}
	_, err := table.Insert(ctx, values())
	require.NoError(t, err)

	_, err = table.Insert(ctx, values())
	repoErr, ok := repository.AsError(err)
	require.True(t, ok, "expected repository error, got %v", err)
	assert.Equal(t, "23505", repoErr.Code)
}

func TestBMITrigger(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, MigrateOptions{BMITrigger: true})
	patients := NewTable[model.Patient](db, model.TablePatients)
	measurements := NewTable[model.Anthropometry](db, model.TableAnthropometries)

	p, err := patients.Insert(ctx, patientValues("Ana"))
	require.NoError(t, err)

	now := time.Now().UTC()
	row, err := measurements.Insert(ctx, repository.Values{
		"id": uuid.New(), "patient_id": p.ID, "weight": 65.5, "height": 1.65,
		"measured_at": now, "created_at": now, "updated_at": now,
	})
	require.NoError(t, err)
	require.NotNil(t, row.BMI)
	assert.Equal(t, 24.06, *row.BMI)

	_, err = measurements.Update(ctx, repository.NewQuery().Eq("id", row.ID), repository.Values{"weight": 70.0})
	require.NoError(t, err)
	row, err = measurements.First(ctx, repository.NewQuery().Eq("id", row.ID))
	require.NoError(t, err)
	require.NotNil(t, row.BMI)
	assert.Equal(t, 25.71, *row.BMI)
}
