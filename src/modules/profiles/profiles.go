package profiles

import (
	"github.com/gofiber/fiber/v2"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/models"
	"gorm.io/gorm"
)

// Profile is an author's page: their posts newest first, the post total,
// and whether the viewer already follows them.
func Profile(c *fiber.Ctx) error {
	db := database.DB

	var author models.User
	if err := db.Where("username = ?", c.Params("username")).First(&author).Error; err != nil {
		return helpers.RenderNotFound(c)
	}

	posts, page, err := paginatedPosts(c, db.Model(&models.Post{}).Where("author_id = ?", author.ID))
	if err != nil {
		return err
	}

	following := false
	isOwner := false
	if viewerID, ok := c.Locals("user_id").(string); ok && viewerID != "" {
		isOwner = viewerID == author.ID.String()
		var count int64
		if err := db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewerID, author.ID).
			Count(&count).Error; err != nil {
			return err
		}
		following = count > 0
	}

	return c.Render("profile", helpers.PageContext(c, fiber.Map{
		"Author":    author,
		"Posts":     posts,
		"Page":      page,
		"Following": following,
		"IsOwner":   isOwner,
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
