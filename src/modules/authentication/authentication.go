package authentication

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/middleware"
	"github.com/madina-zvezda/yatube/src/core/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signupForm struct {
	Username  string `form:"username" validate:"required,max=150"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Email     string `form:"email" validate:"required,email"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// usernameRe limits usernames to characters that survive in profile URLs.
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// issueJwtToken generates a JWT token for authenticated users.
func issueJwtToken(userID string, name string, email string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["sub"] = userID
	claims["name"] = name
	claims["email"] = email
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(30 * 24 * time.Hour).Unix()

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

// setAuthCookie stores the signed token in the HttpOnly session cookie.
func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// SignUpPage renders the registration form.
func SignUpPage(c *fiber.Ctx) error {
	return c.Render("auth/signup", helpers.PageContext(c, fiber.Map{
		"Form":   signupForm{},
		"Errors": map[string]string{},
	}), "layouts/base")
}

// SignUp handles user registration.
func SignUp(c *fiber.Ctx) error {
	db := database.DB
	form := new(signupForm)

	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("auth/signup", helpers.PageContext(c, fiber.Map{
			"Form":   form,
			"Errors": map[string]string{"Form": "Invalid input data"},
		}), "layouts/base")
	}

	if err := helpers.Validate(form); err != nil {
		return c.Render("auth/signup", helpers.PageContext(c, fiber.Map{
			"Form":   form,
			"Errors": helpers.ValidationErrors(err),
		}), "layouts/base")
	}
	if !usernameRe.MatchString(form.Username) {
		return c.Render("auth/signup", helpers.PageContext(c, fiber.Map{
			"Form":   form,
			"Errors": map[string]string{"Username": "Enter a valid username. Only letters, numbers, and @/./+/-/_ characters."},
		}), "layouts/base")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Username:     form.Username,
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: string(hashedPwd),
	}
	if result := db.Create(&user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return c.Render("auth/signup", helpers.PageContext(c, fiber.Map{
				"Form":   form,
				"Errors": map[string]string{"Username": "A user with that username or email already exists."},
			}), "layouts/base")
		}
		// Log the error to the console for debugging
		fmt.Println("Error creating user:", result.Error)
		return result.Error
	}

	token, err := issueJwtToken(user.ID.String(), user.FirstName, user.Email)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	setAuthCookie(c, token)

	return c.Redirect("/", fiber.StatusSeeOther)
}

// SignInPage renders the login form, keeping the ?next= destination in a
// hidden field so the round trip lands where the user was headed.
func SignInPage(c *fiber.Ctx) error {
	return c.Render("auth/login", helpers.PageContext(c, fiber.Map{
		"Next": c.Query("next"),
	}), "layouts/base")
}

// SignIn handles user authentication.
func SignIn(c *fiber.Ctx) error {
	db := database.DB
	form := new(loginForm)

	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("auth/login", helpers.PageContext(c, fiber.Map{
			"Error": "Invalid input data",
		}), "layouts/base")
	}

	user := new(models.User)
	result := db.Where("username = ?", form.Username).First(user)
	if result.Error != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		return c.Render("auth/login", helpers.PageContext(c, fiber.Map{
			"Error":    "Please enter a correct username and password.",
			"Username": form.Username,
			"Next":     form.Next,
		}), "layouts/base")
	}

	token, err := issueJwtToken(user.ID.String(), user.FirstName, user.Email)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	setAuthCookie(c, token)

	return c.Redirect(safeNext(form.Next), fiber.StatusSeeOther)
}

// Logout expires the session cookie and sends the user home.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}
