package app

import (
	"fmt"
	"strings"

	"talentbridge/internal/delivery/http/handler"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Log.Named("http")).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Log.Named("http")).Middleware())

	routes.RegisterV1(f, routes.Deps{
		AuthMiddleware:  middleware.NewAuthMiddleware(c.JWT),
		Health:          handler.NewHealthHandler(c.DB, c.Redis),
		Auth:            c.AuthUC,
		Skills:          c.SkillUC,
		Assessments:     c.AssessmentUC,
		Proficiency:     c.ProficiencyUC,
		Matching:        c.MatchingUC,
		Jobs:            c.JobUC,
		Recommendations: c.RecommendationUC,
	})

	return &App{Fiber: f, Container: c}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	app := New(c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
