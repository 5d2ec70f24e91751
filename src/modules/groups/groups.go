package groups

import (
	"github.com/gofiber/fiber/v2"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/models"
	"gorm.io/gorm"
)

// GroupList shows every group so the per-group feeds are discoverable.
func GroupList(c *fiber.Ctx) error {
	var groups []models.Group
	if err := database.DB.Order("title").Find(&groups).Error; err != nil {
		return err
	}
	return c.Render("group_list", helpers.PageContext(c, fiber.Map{
		"Groups": groups,
	}), "layouts/base")
}

// GroupPosts is the feed of one group, looked up by slug.
func GroupPosts(c *fiber.Ctx) error {
	db := database.DB

	var group models.Group
	if err := db.Where("slug = ?", c.Params("slug")).First(&group).Error; err != nil {
		return helpers.RenderNotFound(c)
	}

	posts, page, err := paginatedPosts(c, db.Model(&models.Post{}).Where("group_id = ?", group.ID))
	if err != nil {
		return err
	}

	return c.Render("group", helpers.PageContext(c, fiber.Map{
		"Group": group,
		"Posts": posts,
		"Page":  page,
	}), "layouts/base")
}

func paginatedPosts(c *fiber.Ctx, query *gorm.DB) ([]models.Post, helpers.Page, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, helpers.Page{}, err
	}
	page := helpers.Paginate(total, config.Int("POSTS_PER_PAGE"), c.Query("page"))

	var posts []models.Post
	err := query.Session(&gorm.Session{}).
		Preload("Author").Preload("Group").
		Order("pub_date DESC").
		Limit(page.PerPage).Offset(page.Offset).
		Find(&posts).Error
	return posts, page, err
}
