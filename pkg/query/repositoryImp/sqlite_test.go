package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"indash/database"
	"indash/pkg/query/repository"
)

func seededExecutor(t *testing.T) repository.Executor {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "indash.db"))
	require.NoError(t, err)
	require.NoError(t, database.SeedDemo(db))
	return NewSQLite(db, zap.NewNop(), nil)
}

func TestSQLiteExecutorRows(t *testing.T) {
	exec := seededExecutor(t)
	resp, err := exec.Execute(context.Background(),
		"SELECT ID_ADMIN, NAMA FROM t2_admin WHERE ID_ADMIN IN ('32','3201') ORDER BY LENGTH(ID_ADMIN) DESC",
		repository.SourcePlanning)
	require.NoError(t, err)
	assert.Equal(t, repository.StatusSuccess, resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "BOGOR", resp.Data[0].String("NAMA"))
	assert.Equal(t, "32", resp.Data[1].String("ID_ADMIN"))
}

func TestSQLiteExecutorNumbers(t *testing.T) {
	exec := seededExecutor(t)
	resp, err := exec.Execute(context.Background(),
		"SELECT PADI, JAGUNG, KEDELAI FROM provitas_kab WHERE ID_KABU = '3201'", repository.SourcePlanning)
	require.NoError(t, err)
	row, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, 5.8, row.Float("PADI"))
	assert.Equal(t, 1.6, row.Float("kedelai"))
}

func TestSQLiteExecutorEmptyAndErrors(t *testing.T) {
	exec := seededExecutor(t)
	resp, err := exec.Execute(context.Background(), "SELECT * FROM t2_admin WHERE ID_ADMIN = '99'", repository.SourcePlanning)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)

	_, err = exec.Execute(context.Background(), "SELECT * FROM no_such_table", repository.SourcePlanning)
	assert.ErrorIs(t, err, repository.ErrQueryFailed)

	_, err = exec.Execute(context.Background(), "DELETE FROM t2_admin", repository.SourcePlanning)
	assert.ErrorIs(t, err, repository.ErrNotReadOnly)
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "indash.db"))
	require.NoError(t, err)
	require.NoError(t, database.SeedDemo(db))
	require.NoError(t, database.SeedDemo(db))

	exec := NewSQLite(db, zap.NewNop(), nil)
	resp, err := exec.Execute(context.Background(), "SELECT COUNT(*) AS n FROM t2_admin", repository.SourcePlanning)
	require.NoError(t, err)
	row, _ := resp.First()
	assert.Equal(t, 6, row.Int("n"))
}
