package routes

import (
	"talentbridge/internal/delivery/http/handler"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/identity"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps are the wired collaborators the route tree needs. The container
// builds them once; this package only decides which routes exist and which
// middleware guards them.
type Deps struct {
	AuthMiddleware *middleware.AuthMiddleware

	Health          *handler.HealthHandler
	Auth            usecase.AuthUsecase
	Skills          usecase.SkillUsecase
	Assessments     usecase.AssessmentUsecase
	Proficiency     usecase.ProficiencyUsecase
	Matching        usecase.MatchingUsecase
	Jobs            usecase.JobUsecase
	Recommendations usecase.RecommendationUsecase
}

func RegisterV1(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	d.Health.RegisterRoutes(r)

	v1 := r.Group("/api/v1")

	authHandler := handler.NewAuthHandler(d.Auth)
	authHandler.RegisterRoutes(v1)

	skillHandler := handler.NewSkillHandler(d.Skills)
	skillHandler.RegisterRoutes(v1)

	protected := v1.Group("", d.AuthMiddleware.Middleware())

	assessmentHandler := handler.NewAssessmentHandler(d.Assessments)
	assessmentHandler.RegisterRoutes(protected)

	userSkillHandler := handler.NewUserSkillHandler(d.Proficiency)
	userSkillHandler.RegisterRoutes(protected)

	matchHandler := handler.NewMatchHandler(d.Matching)
	matchHandler.RegisterRoutes(protected)

	recommendationHandler := handler.NewRecommendationHandler(d.Recommendations)
	recommendationHandler.RegisterRoutes(protected)

	jobHandler := handler.NewJobHandler(d.Jobs)
	jobHandler.RegisterRoutes(protected)

	admin := protected.Group("", d.AuthMiddleware.RequireRole(identity.RoleAdmin))
	skillHandler.RegisterAdminRoutes(admin)
}
