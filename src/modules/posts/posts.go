package posts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/models"
	"github.com/madina-zvezda/yatube/src/utils"
	"gorm.io/gorm"
)

type postForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group"`
}

// PostDetail shows one post with its comments, newest first, and a comment
// form for signed-in viewers.
func PostDetail(c *fiber.Ctx) error {
	post, err := findPost(c.Params("post_id"))
	if err != nil {
		return helpers.RenderNotFound(c)
	}

	var comments []models.Comment
	if err := database.DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created DESC").
		Find(&comments).Error; err != nil {
		return err
	}

	var authorPosts int64
	if err := database.DB.Model(&models.Post{}).Where("author_id = ?", post.AuthorID).Count(&authorPosts).Error; err != nil {
		return err
	}

	return c.Render("post_detail", helpers.PageContext(c, fiber.Map{
		"Post":        post,
		"Comments":    comments,
		"AuthorPosts": authorPosts,
	}), "layouts/base")
}

// CreatePostPage renders the empty post form.
func CreatePostPage(c *fiber.Ctx) error {
	groups, err := groupChoices()
	if err != nil {
		return err
	}
	return c.Render("post_create", helpers.PageContext(c, fiber.Map{
		"Groups":        groups,
		"IsEdit":        false,
		"SelectedGroup": "",
		"Errors":        map[string]string{},
	}), "layouts/base")
}

// CreatePost stores a new post for the signed-in user and sends them to
// their own profile.
func CreatePost(c *fiber.Ctx) error {
	db := database.DB

	user, err := currentUser(c)
	if err != nil {
		return helpers.RedirectToLogin(c)
	}

	form := new(postForm)
	if err := c.BodyParser(form); err != nil {
		return renderPostForm(c, form, map[string]string{"Form": "Invalid input data"}, false, "")
	}
	form.Text = strings.TrimSpace(form.Text)

	if err := helpers.Validate(form); err != nil {
		return renderPostForm(c, form, helpers.ValidationErrors(err), false, "")
	}
	groupID, ok := resolveGroup(form.Group)
	if !ok {
		return renderPostForm(c, form, map[string]string{"Group": "Select a valid choice."}, false, "")
	}

	imageURL, err := savedImageURL(c)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
		Image:    imageURL,
	}
	if err := db.Create(&post).Error; err != nil {
		return err
	}

	return c.Redirect("/profile/"+user.Username, fiber.StatusSeeOther)
}

// EditPostPage renders the post form prefilled. Only the author may edit,
// anyone else is sent back to the post.
func EditPostPage(c *fiber.Ctx) error {
	post, err := findPost(c.Params("post_id"))
	if err != nil {
		return helpers.RenderNotFound(c)
	}

	user, err := currentUser(c)
	if err != nil {
		return helpers.RedirectToLogin(c)
	}
	if post.AuthorID != user.ID {
		return c.Redirect("/posts/"+post.ID.String(), fiber.StatusSeeOther)
	}

	groups, err := groupChoices()
	if err != nil {
		return err
	}
	selected := ""
	if post.GroupID != nil {
		selected = strconv.Itoa(int(*post.GroupID))
	}
	return c.Render("post_create", helpers.PageContext(c, fiber.Map{
		"Groups":        groups,
		"IsEdit":        true,
		"PostID":        post.ID.String(),
		"Form":          postForm{Text: post.Text, Group: selected},
		"SelectedGroup": selected,
		"Errors":        map[string]string{},
	}), "layouts/base")
}

// EditPost updates text, group, and image of the author's own post. The
// author and publication date never change.
func EditPost(c *fiber.Ctx) error {
	db := database.DB

	post, err := findPost(c.Params("post_id"))
	if err != nil {
		return helpers.RenderNotFound(c)
	}

	user, err := currentUser(c)
	if err != nil {
		return helpers.RedirectToLogin(c)
	}
	if post.AuthorID != user.ID {
		return c.Redirect("/posts/"+post.ID.String(), fiber.StatusSeeOther)
	}

	form := new(postForm)
	if err := c.BodyParser(form); err != nil {
		return renderPostForm(c, form, map[string]string{"Form": "Invalid input data"}, true, post.ID.String())
	}
	form.Text = strings.TrimSpace(form.Text)

	if err := helpers.Validate(form); err != nil {
		return renderPostForm(c, form, helpers.ValidationErrors(err), true, post.ID.String())
	}
	groupID, ok := resolveGroup(form.Group)
	if !ok {
		return renderPostForm(c, form, map[string]string{"Group": "Select a valid choice."}, true, post.ID.String())
	}

	imageURL, err := savedImageURL(c)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	if imageURL == "" {
		imageURL = post.Image
	}

	err = db.Model(post).Select("text", "group_id", "image").Updates(models.Post{
		Text:    form.Text,
		GroupID: groupID,
		Image:   imageURL,
	}).Error
	if err != nil {
		return err
	}

	return c.Redirect("/posts/"+post.ID.String(), fiber.StatusSeeOther)
}

// AddComment attaches a comment to the post. Blank text is dropped without
// an error, the user just lands back on the post.
func AddComment(c *fiber.Ctx) error {
	db := database.DB

	post, err := findPost(c.Params("post_id"))
	if err != nil {
		return helpers.RenderNotFound(c)
	}

	user, err := currentUser(c)
	if err != nil {
		return helpers.RedirectToLogin(c)
	}

	text := strings.TrimSpace(c.FormValue("text"))
	if text == "" {
		return c.Redirect("/posts/"+post.ID.String(), fiber.StatusSeeOther)
	}

	comment := models.Comment{
		PostID:   &post.ID,
		AuthorID: user.ID,
		Text:     text,
	}
	if err := db.Create(&comment).Error; err != nil {
		return err
	}

	return c.Redirect("/posts/"+post.ID.String(), fiber.StatusSeeOther)
}

// findPost loads a post with its author and group. Garbage ids count as
// not found rather than a database error.
func findPost(raw string) (*models.Post, error) {
	postID, err := uuid.Parse(raw)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var post models.Post
	if err := database.DB.Preload("Author").Preload("Group").First(&post, "id = ?", postID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, _ := c.Locals("user_id").(string)
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func groupChoices() ([]models.Group, error) {
	var groups []models.Group
	err := database.DB.Order("title").Find(&groups).Error
	return groups, err
}

// resolveGroup maps the submitted group choice to a group id. Empty means
// no group, anything that is not an existing group id is rejected.
func resolveGroup(raw string) (*uint, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return nil, false
	}
	var group models.Group
	if err := database.DB.First(&group, "id = ?", id).Error; err != nil {
		return nil, false
	}
	gid := uint(id)
	return &gid, true
}

// savedImageURL stores the uploaded image when one was sent and returns its
// serving URL, or "" when the form had no file.
func savedImageURL(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil || fileHeader.Size == 0 {
		return "", nil
	}
	return utils.SaveImage(fileHeader, "posts")
}

func renderPostForm(c *fiber.Ctx, form *postForm, formErrors map[string]string, isEdit bool, postID string) error {
	groups, err := groupChoices()
	if err != nil {
		return err
	}
	bind := fiber.Map{
		"Groups":        groups,
		"IsEdit":        isEdit,
		"Form":          form,
		"SelectedGroup": form.Group,
		"Errors":        formErrors,
	}
	if isEdit {
		bind["PostID"] = postID
	}
	return c.Render("post_create", helpers.PageContext(c, bind), "layouts/base")
}
