package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artframe/internal/config"
	"artframe/internal/favorites"
	"artframe/internal/provider"
)

// setupTestDB seeds a favorites database in a temp dir and returns its path.
func setupTestDB(t *testing.T, refs ...provider.ImageRef) string {
	t.Helper()
	dir := t.TempDir()
	db, err := favorites.NewDB(dir, nil)
	require.NoError(t, err)
	for _, ref := range refs {
		require.NoError(t, db.Add(ref))
	}
	require.NoError(t, db.Close())
	return dir
}

// executeCommandC executes a cobra command and captures its output.
func executeCommandC(root *cobra.Command, args ...string) (string, string, error) {
	dbPathFlag = ""
	countFlag = 1
	genreFlag = ""

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newTestRootCmd() *cobra.Command {
	return NewRootCmd(favorites.NewDB)
}

func TestRootHelp(t *testing.T) {
	stdout, stderr, err := executeCommandC(newTestRootCmd(), "--help")
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "artframe-cli [command]")
}

func TestGenresCommand(t *testing.T) {
	stdout, stderr, err := executeCommandC(newTestRootCmd(), "genres")
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, len(config.Genres))
	assert.Contains(t, stdout, "Mountains (mountains)")
	assert.Contains(t, stdout, "Aurora (aurora)")
}

func TestStylesAndFiltersCommands(t *testing.T) {
	stdout, _, err := executeCommandC(newTestRootCmd(), "styles")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Gallery White")
	assert.Contains(t, stdout, "Walnut")

	stdout, _, err = executeCommandC(newTestRootCmd(), "filters")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Noir")
	assert.Contains(t, stdout, "Sepia")
}

func TestResolveCommand(t *testing.T) {
	t.Run("default genre", func(t *testing.T) {
		stdout, stderr, err := executeCommandC(newTestRootCmd(), "resolve")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "https://picsum.photos/seed/mountains-")
	})

	t.Run("explicit genre and count", func(t *testing.T) {
		stdout, stderr, err := executeCommandC(newTestRootCmd(), "resolve", "forest", "--count", "3")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		require.Len(t, lines, 3)
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "https://picsum.photos/seed/forest-"), line)
			assert.True(t, strings.HasSuffix(line, "/1920/1080"), line)
		}
		// Each resolution carries a fresh random fragment.
		assert.NotEqual(t, lines[0], lines[1])
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, _, err := executeCommandC(newTestRootCmd(), "resolve", "cityscape")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown genre")
	})
}

func TestFavoritesListCommand(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		dbPath := setupTestDB(t)
		stdout, stderr, err := executeCommandC(newTestRootCmd(), "--dbpath", dbPath, "favorites", "list")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "No favorites stored.")
	})

	t.Run("with favorites", func(t *testing.T) {
		forest := provider.ImageRef{URL: "https://picsum.photos/seed/forest-aaaa1111/1920/1080", Genre: config.GenreForest}
		coast := provider.ImageRef{URL: "https://picsum.photos/seed/coast-bbbb2222/1920/1080", Genre: config.GenreCoast}
		dbPath := setupTestDB(t, forest, coast)

		stdout, stderr, err := executeCommandC(newTestRootCmd(), "--dbpath", dbPath, "favorites", "list")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, forest.URL)
		assert.Contains(t, stdout, coast.URL)

		stdout, _, err = executeCommandC(newTestRootCmd(), "--dbpath", dbPath, "favorites", "list", "--genre", "forest")
		require.NoError(t, err)
		assert.Contains(t, stdout, forest.URL)
		assert.NotContains(t, stdout, coast.URL)
	})
}

func TestFavoritesRemoveCommand(t *testing.T) {
	ref := provider.ImageRef{URL: "https://picsum.photos/seed/lakes-cccc3333/1920/1080", Genre: config.GenreLakes}
	dbPath := setupTestDB(t, ref)

	stdout, stderr, err := executeCommandC(newTestRootCmd(), "--dbpath", dbPath, "favorites", "remove", ref.URL)
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "Removed "+ref.URL)

	// Verify in DB
	db, err := favorites.NewDB(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()
	fav, err := db.IsFavorite(ref.URL)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestFavoritesCountsCommand(t *testing.T) {
	dbPath := setupTestDB(t,
		provider.ImageRef{URL: "https://picsum.photos/seed/desert-dddd4444/1920/1080", Genre: config.GenreDesert},
		provider.ImageRef{URL: "https://picsum.photos/seed/desert-eeee5555/1920/1080", Genre: config.GenreDesert},
	)

	stdout, stderr, err := executeCommandC(newTestRootCmd(), "--dbpath", dbPath, "favorites", "counts")
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "Desert (2)")
}
