package follows

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/models"
	"gorm.io/gorm"
)

// Follow subscribes the viewer to the author named in the URL. Following
// someone twice, racing another request, or following yourself with
// ALLOW_SELF_FOLLOW off all land on the profile with nothing changed.
func Follow(c *fiber.Ctx) error {
	db := database.DB

	viewerID, ok := c.Locals("user_id").(string)
	if !ok || viewerID == "" {
		return helpers.RedirectToLogin(c)
	}
	viewerUUID, err := uuid.Parse(viewerID)
	if err != nil {
		return helpers.RedirectToLogin(c)
	}

	var author models.User
	if err := db.Where("username = ?", c.Params("username")).First(&author).Error; err != nil {
		return helpers.RenderNotFound(c)
	}

	if author.ID == viewerUUID && !config.Bool("ALLOW_SELF_FOLLOW") {
		return c.Redirect("/profile/"+author.Username, fiber.StatusSeeOther)
	}

	var existing models.Follow
	err = db.Where("user_id = ? AND author_id = ?", viewerUUID, author.ID).First(&existing).Error
	if err == nil {
		return c.Redirect("/profile/"+author.Username, fiber.StatusSeeOther)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	follow := models.Follow{
		UserID:   viewerUUID,
		AuthorID: author.ID,
	}
	if err := db.Create(&follow).Error; err != nil {
		// A racing request already created the edge, keep the one row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Redirect("/profile/"+author.Username, fiber.StatusSeeOther)
		}
		return err
	}

	return c.Redirect("/profile/"+author.Username, fiber.StatusSeeOther)
}

// Unfollow removes the subscription if it exists. Unfollowing someone you
// never followed is not an error.
func Unfollow(c *fiber.Ctx) error {
	db := database.DB

	viewerID, ok := c.Locals("user_id").(string)
	if !ok || viewerID == "" {
		return helpers.RedirectToLogin(c)
	}

	var author models.User
	if err := db.Where("username = ?", c.Params("username")).First(&author).Error; err != nil {
		return helpers.RenderNotFound(c)
	}

	if err := db.Where("user_id = ? AND author_id = ?", viewerID, author.ID).Delete(&models.Follow{}).Error; err != nil {
		return err
	}

	return c.Redirect("/profile/"+author.Username, fiber.StatusSeeOther)
}
