package router

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/madina-zvezda/yatube/src/core/cache"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/helpers"
	"github.com/madina-zvezda/yatube/src/core/middleware"
	"github.com/madina-zvezda/yatube/src/modules/authentication"
	"github.com/madina-zvezda/yatube/src/modules/feed"
	"github.com/madina-zvezda/yatube/src/modules/follows"
	"github.com/madina-zvezda/yatube/src/modules/groups"
	"github.com/madina-zvezda/yatube/src/modules/posts"
	"github.com/madina-zvezda/yatube/src/modules/profiles"
	"github.com/madina-zvezda/yatube/web"
)

// NewApp builds the Fiber app with the template engine, the error pages,
// and every route wired up. Tests drive the exact app main serves.
func NewApp(pages *cache.PageCache) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(recover.New())   // Recover middleware to handle panics
	app.Use(cors.New())      // CORS middleware for cross-origin requests
	app.Use(requestid.New()) // Middleware to generate unique request IDs

	InitialiseAndSetupRoutes(app, pages)
	return app
}

func InitialiseAndSetupRoutes(app *fiber.App, pages *cache.PageCache) {
	root := app.Group("/", logger.New())
	root.Use(middleware.LoadUser())

	app.Static("/static", config.Config("STATIC_DIR"))
	app.Static("/media", config.Config("MEDIA_ROOT"))

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	feedHandler := feed.NewHandler(pages)

	// Feeds
	root.Get("/", feedHandler.Index)
	root.Get("/follow", middleware.Protected(), feedHandler.FollowIndex)
	root.Get("/group", groups.GroupList)
	root.Get("/group/:slug", groups.GroupPosts)
	root.Get("/profile/:username", profiles.Profile)

	// Posts and comments
	root.Get("/create", middleware.Protected(), posts.CreatePostPage)
	root.Post("/create", middleware.Protected(), posts.CreatePost)
	root.Get("/posts/:post_id", posts.PostDetail)
	root.Get("/posts/:post_id/edit", middleware.Protected(), posts.EditPostPage)
	root.Post("/posts/:post_id/edit", middleware.Protected(), posts.EditPost)
	root.Post("/posts/:post_id/comment", middleware.Protected(), posts.AddComment)

	// Subscriptions
	root.Get("/profile/:username/follow", middleware.Protected(), follows.Follow)
	root.Post("/profile/:username/follow", middleware.Protected(), follows.Follow)
	root.Get("/profile/:username/unfollow", middleware.Protected(), follows.Unfollow)
	root.Post("/profile/:username/unfollow", middleware.Protected(), follows.Unfollow)

	// Accounts
	authGroup := root.Group("/auth")
	authGroup.Get("/signup", authentication.SignUpPage)
	authGroup.Post("/signup", authentication.SignUp)
	authGroup.Get("/login", authentication.SignInPage)
	authGroup.Post("/login", authentication.SignIn)
	authGroup.Get("/logout", authentication.Logout)

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}

// errorHandler turns unmatched routes into the 404 page and everything
// else into the 500 page.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return helpers.RenderNotFound(c)
	}
	log.Printf("Unhandled error on %s %s: %v\n", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", helpers.PageContext(c, fiber.Map{}), "layouts/base")
}
