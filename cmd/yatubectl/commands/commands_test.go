package commands

import (
	"path/filepath"
	"testing"

	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) {
	t.Helper()
	config.SetupEnv()
	viper.Set("DB_DRIVER", "sqlite")
	viper.Set("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, runMigrate())
}

func resetGroupFlags() {
	groupTitle = ""
	groupSlug = ""
	groupDescription = ""
}

func TestGroupsAddCreatesRow(t *testing.T) {
	setupCLI(t)
	t.Cleanup(resetGroupFlags)

	groupTitle = "Cat pictures"
	groupSlug = "cats"
	groupDescription = "Where the cats live"
	require.NoError(t, runGroupsAdd())

	db, err := openDB()
	require.NoError(t, err)
	var group models.Group
	require.NoError(t, db.First(&group, "slug = ?", "cats").Error)
	assert.Equal(t, "Cat pictures", group.Title)
	assert.Equal(t, "Where the cats live", group.Description)
}

func TestGroupsAddRequiresFlags(t *testing.T) {
	setupCLI(t)
	t.Cleanup(resetGroupFlags)

	groupTitle = "No slug"
	groupSlug = ""
	err := runGroupsAdd()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestGroupsAddRejectsBadSlug(t *testing.T) {
	setupCLI(t)
	t.Cleanup(resetGroupFlags)

	groupTitle = "Bad slug"
	groupSlug = "no spaces allowed"
	err := runGroupsAdd()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "may contain only")
}

func TestGroupsAddDuplicateSlug(t *testing.T) {
	setupCLI(t)
	t.Cleanup(resetGroupFlags)

	groupTitle = "Cats"
	groupSlug = "cats"
	require.NoError(t, runGroupsAdd())

	groupTitle = "Cats again"
	err := runGroupsAdd()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGroupsRm(t *testing.T) {
	setupCLI(t)
	t.Cleanup(resetGroupFlags)

	groupTitle = "Cats"
	groupSlug = "cats"
	require.NoError(t, runGroupsAdd())

	require.NoError(t, runGroupsRm("cats"))

	db, err := openDB()
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Model(&models.Group{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	err = runGroupsRm("cats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no group with slug")
}

func TestGroupsLs(t *testing.T) {
	setupCLI(t)
	t.Cleanup(resetGroupFlags)

	groupTitle = "Cats"
	groupSlug = "cats"
	require.NoError(t, runGroupsAdd())

	require.NoError(t, runGroupsLs())
}

func TestMigrateTwiceIsIdempotent(t *testing.T) {
	setupCLI(t)
	require.NoError(t, runMigrate())
}
