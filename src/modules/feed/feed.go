package feed

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/madina-zvezda/yatube/src/core/cache"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/models"
	"gorm.io/gorm"
)

// Handler serves the post feeds. The page cache is handed in at router
// setup, only the global feed reads and writes it.
type Handler struct {
	Pages *cache.PageCache
}

func NewHandler(pages *cache.PageCache) *Handler {
	return &Handler{Pages: pages}
}

// Index is the global feed. The whole rendered body is cached per request
// URL, so readers may see a page up to one TTL older than the database.
// Writes never invalidate it, only expiry or an explicit cache clear does.
func (h *Handler) Index(c *fiber.Ctx) error {
	cacheKey := c.OriginalURL()
	if body, ok := h.Pages.Get(cacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(body)
	}

	posts, page, err := paginatedPosts(c, database.DB.Model(&models.Post{}))
	if err != nil {
		log.Printf("Error fetching feed posts: %v\n", err)
		return err
	}

	body, err := renderToBytes(c, "index", helpers.PageContext(c, fiber.Map{
		"Title": "Latest updates",
		"Posts": posts,
		"Page":  page,
	}))
	if err != nil {
		return err
	}
	h.Pages.Set(cacheKey, body)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}

// FollowIndex lists posts by the authors the viewer follows. Never cached,
// an empty subscription list renders an empty page rather than an error.
func (h *Handler) FollowIndex(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return helpers.RedirectToLogin(c)
	}

	authorIDs, err := followedAuthorIDs(userID)
	if err != nil {
		log.Printf("Error fetching followed authors: %v\n", err)
		return err
	}

	posts, page, err := paginatedPosts(c, database.DB.Model(&models.Post{}).Where("author_id IN ?", authorIDs))
	if err != nil {
		return err
	}

	return c.Render("follow", helpers.PageContext(c, fiber.Map{
		"Title": "Posts by your authors",
		"Posts": posts,
		"Page":  page,
	}), "layouts/base")
}

// followedAuthorIDs returns the ids of every author userID subscribes to.
func followedAuthorIDs(userID string) ([]string, error) {
	db := database.DB
	var rows []struct {
		AuthorID string `gorm:"column:author_id"`
	}
	if err := db.Table("follows").Where("user_id = ?", userID).Select("author_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	authorIDs := make([]string, len(rows))
	for i, row := range rows {
		authorIDs[i] = row.AuthorID
	}
	return authorIDs, nil
}

// paginatedPosts counts the query, resolves ?page= against the count, and
// loads one window of posts with their authors and groups, newest first.
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

// renderToBytes runs the same template pipeline c.Render would, but into a
// buffer so the exact bytes can be cached and replayed.
func renderToBytes(c *fiber.Ctx, name string, bind fiber.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.App().Config().Views.Render(&buf, name, bind, "layouts/base"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
