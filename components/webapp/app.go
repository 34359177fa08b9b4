package webapp

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/analytica/webapp/pkg/backend"
)

// App wires the page handlers, session store, renderer, and backend client
// into one web frontend.
type App struct {
	cfg      Config
	api      *backend.Client
	sessions *SessionStore
	renderer *Renderer
	charts   *ChartRenderer
}

// New builds the application from resolved configuration.
func New(cfg Config) (*App, error) {
	api, err := backend.New(backend.Config{BaseURL: cfg.BackendURL})
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	charts, err := NewChartRenderer()
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:      cfg,
		api:      api,
		sessions: NewSessionStore(api, cfg.SessionTTL),
		renderer: renderer,
		charts:   charts,
	}, nil
}

// Router assembles the Fiber app with the full route table.
func (a *App) Router() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/", a.handleLanding)
	app.Get("/login", a.redirectIfAuthed(a.handleLoginPage))
	app.Post("/login", a.redirectIfAuthed(a.handleLogin))
	app.Get("/register", a.redirectIfAuthed(a.handleRegisterPage))
	app.Post("/register", a.redirectIfAuthed(a.handleRegister))
	app.Post("/logout", a.handleLogout)
	app.Post("/theme", a.handleThemeToggle)

	app.Get("/upload", a.requireAuth(a.handleUploadPage))
	app.Post("/upload", a.requireAuth(a.handleUpload))
	app.Post("/datasets/:id/analyze", a.requireAuth(a.handleAnalyze))
	app.Post("/datasets/:id/delete", a.requireAuth(a.handleDelete))
	app.Get("/dashboard/:id", a.requireAuth(a.handleDashboard))
	app.Get("/dashboard/:id/quality", a.requireAuth(a.handleQuality))
	app.Get("/chat/:id", a.requireAuth(a.handleChatPage))
	app.Post("/chat/:id", a.requireAuth(a.handleChatSend))
	app.Post("/chat/:id/clear", a.requireAuth(a.handleChatClear))
	app.Get("/reports", a.requireAuth(a.handleReports))

	return app
}

// client returns the backend client bound to the visitor's token.
func (a *App) client(c *fiber.Ctx) *backend.Client {
	return a.api.WithToken(a.sessions.Token(c))
}

// requireAuth gates protected routes on token presence. The backend remains
// the actual authority; stale tokens surface as 401s during page loads.
func (a *App) requireAuth(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.sessions.Token(c) == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return h(c)
	}
}

// redirectIfAuthed sends signed-in visitors from public routes to the app.
func (a *App) redirectIfAuthed(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.sessions.Token(c) != "" {
			return c.Redirect("/upload", fiber.StatusFound)
		}
		return h(c)
	}
}

// expireSession handles a backend 401: the stored token is stale, so the
// session is cleared and the visitor is sent back to login.
func (a *App) expireSession(c *fiber.Ctx) error {
	_ = a.sessions.Logout(c)
	return c.Redirect("/login", fiber.StatusFound)
}

func (a *App) handleThemeToggle(c *fiber.Ctx) error {
	next := ThemeFromRequest(c).Toggle()
	c.Cookie(&fiber.Cookie{
		Name:     themeCookie,
		Value:    string(next),
		SameSite: "Lax",
		MaxAge:   365 * 24 * 60 * 60,
	})
	target := c.Get(fiber.HeaderReferer)
	if target == "" {
		target = "/"
	}
	return c.Redirect(target, fiber.StatusFound)
}

// base assembles the view fields shared by every page.
func (a *App) base(c *fiber.Ctx, title string) BaseView {
	return BaseView{
		Title:  title,
		Theme:  ThemeFromRequest(c),
		Authed: a.sessions.Token(c) != "",
		User:   a.sessions.User(c),
	}
}
