package middleware

import (
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/models"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "yatube_session"

// Protected middleware for validating JWT tokens. Requests without a valid
// session cookie are sent to the sign-in page instead of getting an error.
func Protected() fiber.Handler {
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not set in the environment variables") // Panic to prevent startup
	}

	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(jwtSecret)},
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  "jwt",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helpers.RedirectToLogin(c)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Extract user claims and attach user_id to the context
			token := c.Locals("jwt").(*jwt.Token)
			claims := token.Claims.(jwt.MapClaims)
			if userID, ok := claims["sub"].(string); ok {
				c.Locals("user_id", userID)
				return c.Next()
			}
			return helpers.RedirectToLogin(c)
		},
	})
}

// LoadUser resolves the session cookie into the signed-in user so templates
// can show who is logged in. Requests with no cookie, or a stale one, pass
// through anonymously.
func LoadUser() fiber.Handler {
	jwtSecret := config.Config("JWT_SECRET")

	return func(c *fiber.Ctx) error {
		raw := c.Cookies(CookieName)
		if raw == "" || jwtSecret == "" {
			return c.Next()
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Next()
		}
		sub, ok := claims["sub"].(string)
		if !ok {
			return c.Next()
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", sub).Error; err != nil {
			return c.Next()
		}
		c.Locals("user", &user)
		c.Locals("user_id", sub)
		return c.Next()
	}
}
