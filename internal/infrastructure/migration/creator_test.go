package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rentals/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add bookings table", "add_bookings_table"},
		{"Add-Bookings-Table", "add_bookings_table"},
		{"ADD_BOOKINGS_TABLE", "add_bookings_table"},
		{"add__bookings__table", "add_bookings_table"},
		{"Add Index 123", "add_index_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add guarantor table", "Guarantors for tenants")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, "000001_add_guarantor_table.up.sql", filepath.Base(first.UpPath))
	assert.Equal(t, "000001_add_guarantor_table.down.sql", filepath.Base(first.DownPath))

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add guarantor table")
	assert.Contains(t, string(up), "Guarantors for tenants")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")

	second, err := CreateMigration(dir, "index documents", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	_, err = CreateMigration(dir, "!!!", "")
	assert.Error(t, err)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000010_add_index.up.sql":         {Data: []byte("--")},
		"000010_add_index.down.sql":       {Data: []byte("--")},
		"000002_create_bookings.up.sql":   {Data: []byte("--")},
		"000002_create_bookings.down.sql": {Data: []byte("--")},
		"README.md":                       {Data: []byte("docs")},
		"notaversion_x.up.sql":            {Data: []byte("--")},
		"nested.up.sql/keep":              {Data: []byte("")},
	}

	list, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "000002_create_bookings", list[0].String())
	assert.Equal(t, uint(10), list[1].Version)
	assert.Equal(t, "add_index", list[1].Name)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	list, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmbeddedMigrations(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "000001_create_properties", list[0].String())
	assert.Equal(t, "000002_create_bookings", list[1].String())
	assert.Equal(t, "000003_create_contracts", list[2].String())

	for _, e := range list {
		_, err := migrations.FS.ReadFile(e.String() + ".down.sql")
		assert.NoError(t, err, e.String())
	}
}
