package webapp

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/analytica/webapp/pkg/backend"
)

type authView struct {
	BaseView
	Error    string
	FullName string
	Email    string
}

type landingView struct {
	BaseView
}

func (a *App) handleLanding(c *fiber.Ctx) error {
	if a.sessions.Token(c) != "" {
		return c.Redirect("/upload", fiber.StatusFound)
	}
	return a.renderer.Render(c, "landing", landingView{
		BaseView: a.base(c, "Analytica"),
	})
}

func (a *App) handleLoginPage(c *fiber.Ctx) error {
	return a.renderer.Render(c, "login", authView{
		BaseView: a.base(c, "Sign In"),
	})
}

func (a *App) handleLogin(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	token, err := a.api.Login(c.UserContext(), email, password)
	if err != nil {
		return a.renderer.Render(c, "login", authView{
			BaseView: a.base(c, "Sign In"),
			Error:    backend.ErrorMessage(err, "Login failed"),
			Email:    email,
		})
	}
	if err := a.sessions.Login(c, token.AccessToken); err != nil {
		return err
	}
	return c.Redirect("/upload", fiber.StatusFound)
}

func (a *App) handleRegisterPage(c *fiber.Ctx) error {
	return a.renderer.Render(c, "register", authView{
		BaseView: a.base(c, "Create Account"),
	})
}

func (a *App) handleRegister(c *fiber.Ctx) error {
	fullName := strings.TrimSpace(c.FormValue("full_name"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	// Local validation happens before any backend call.
	if inline := validateRegistration(password, confirm); inline != "" {
		return a.renderer.Render(c, "register", authView{
			BaseView: a.base(c, "Create Account"),
			Error:    inline,
			FullName: fullName,
			Email:    email,
		})
	}

	token, err := a.api.Register(c.UserContext(), backend.RegisterInput{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return a.renderer.Render(c, "register", authView{
			BaseView: a.base(c, "Create Account"),
			Error:    backend.ErrorMessage(err, "Registration failed"),
			FullName: fullName,
			Email:    email,
		})
	}
	if err := a.sessions.Login(c, token.AccessToken); err != nil {
		return err
	}
	return c.Redirect("/upload", fiber.StatusFound)
}

func validateRegistration(password, confirm string) string {
	if password != confirm {
		return "Passwords do not match"
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}

func (a *App) handleLogout(c *fiber.Ctx) error {
	if err := a.sessions.Logout(c); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}
