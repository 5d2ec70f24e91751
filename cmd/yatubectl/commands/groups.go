package commands

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"text/tabwriter"

	"github.com/madina-zvezda/yatube/src/core/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Group flags
	groupTitle       string
	groupSlug        string
	groupDescription string
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// groupsCmd represents the groups command
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage topic groups",
	Long: `Manage the topic groups posts can be filed under.

Subcommands:
  add  - Create a group
  rm   - Remove a group by slug
  ls   - List groups with their post counts`,
}

var groupsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a group",
	Long: `Create a group with a title and a URL slug.

Examples:
  yatubectl groups add --title "Cat pictures" --slug cats
  yatubectl groups add --title "Travel notes" --slug travel --description "Where we went"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGroupsAdd()
	},
}

var groupsRmCmd = &cobra.Command{
	Use:   "rm SLUG",
	Short: "Remove a group by slug",
	Long: `Remove a group. Posts filed under it stay published and simply lose
their group.

Examples:
  yatubectl groups rm cats`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGroupsRm(args[0])
	},
}

var groupsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List groups with their post counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGroupsLs()
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.AddCommand(groupsAddCmd, groupsRmCmd, groupsLsCmd)

	groupsAddCmd.Flags().StringVar(&groupTitle, "title", "", "Group title (required)")
	groupsAddCmd.Flags().StringVar(&groupSlug, "slug", "", "URL slug (required)")
	groupsAddCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
}

func runGroupsAdd() error {
	if groupTitle == "" || groupSlug == "" {
		return fmt.Errorf("--title and --slug are required")
	}
	if !slugRe.MatchString(groupSlug) {
		return fmt.Errorf("slug %q may contain only letters, numbers, hyphens, and underscores", groupSlug)
	}

	db, err := openDB()
	if err != nil {
		return err
	}

	group := models.Group{
		Title:       groupTitle,
		Slug:        groupSlug,
		Description: groupDescription,
	}
	if err := db.Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("a group with slug %q already exists", groupSlug)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	fmt.Printf("Created group %d: %s (/group/%s)\n", group.ID, group.Title, group.Slug)
	return nil
}

func runGroupsRm(slug string) error {
	db, err := openDB()
	if err != nil {
		return err
	}

	result := db.Where("slug = ?", slug).Delete(&models.Group{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no group with slug %q", slug)
	}

	fmt.Printf("Removed group %s, its posts are now ungrouped\n", slug)
	return nil
}

func runGroupsLs() error {
	db, err := openDB()
	if err != nil {
		return err
	}

	var rows []struct {
		ID    uint
		Slug  string
		Title string
		Posts int64
	}
	err = db.Table("groups").
		Select("groups.id, groups.slug, groups.title, count(posts.id) as posts").
		Joins("LEFT JOIN posts ON posts.group_id = groups.id").
		Group("groups.id, groups.slug, groups.title").
		Order("groups.id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE\tPOSTS")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", row.ID, row.Slug, row.Title, row.Posts)
	}
	return w.Flush()
}
