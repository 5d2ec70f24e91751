package helpers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/madina-zvezda/yatube/src/core/models"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// Validate checks the struct fields against the specified validation tags.
func Validate(val interface{}) error {
	return Validator.Struct(val)
}

// Page describes one window of a paginated listing.
type Page struct {
	Number     int
	TotalPages int
	TotalItems int64
	PerPage    int
	Offset     int
}

// Paginate resolves the raw ?page= value against the item count. Numbers
// that are not integers land on page one, integers outside the range land
// on the last page. An empty listing still has a single page.
func Paginate(total int64, perPage int, rawPage string) Page {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(rawPage)
	if err != nil {
		number = 1
	} else if number < 1 || number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		TotalItems: total,
		PerPage:    perPage,
		Offset:     (number - 1) * perPage,
	}
}

func (p Page) HasPrev() bool { return p.Number > 1 }

func (p Page) HasNext() bool { return p.Number < p.TotalPages }

func (p Page) PrevNumber() int { return p.Number - 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

// Range lists every page number for the pager links.
func (p Page) Range() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// PageContext merges bind with the request-scoped values every template
// expects, like the signed-in user shown in the navigation bar.
func PageContext(c *fiber.Ctx, bind fiber.Map) fiber.Map {
	if bind == nil {
		bind = fiber.Map{}
	}
	if user, ok := c.Locals("user").(*models.User); ok && user != nil {
		bind["User"] = user
	}
	return bind
}

// RenderNotFound serves the custom 404 page.
func RenderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", PageContext(c, fiber.Map{
		"Path": c.Path(),
	}), "layouts/base")
}

// RedirectToLogin bounces an anonymous request to the sign-in page,
// remembering where the user wanted to go.
func RedirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect("/auth/login?next="+next, fiber.StatusSeeOther)
}

// ValidationErrors flattens validator output into per-field messages for
// form redisplay.
func ValidationErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out
	}
	out["Form"] = err.Error()
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	}
	return "Enter a valid value."
}
