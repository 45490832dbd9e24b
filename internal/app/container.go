package app

import (
	"context"
	"time"

	"talentbridge/internal/cache"
	"talentbridge/internal/config"
	"talentbridge/internal/database"
	"talentbridge/internal/database/migration"
	dbpostgres "talentbridge/internal/database/postgres"
	"talentbridge/internal/enrichment"
	"talentbridge/internal/pkg/jwt"
	"talentbridge/internal/repository"
	"talentbridge/internal/usecase"

	"go.uber.org/zap"
)

// Container owns every long-lived collaborator and the wiring between them.
type Container struct {
	Config config.Config
	Log    *zap.Logger

	DB    database.DB
	Redis *cache.Redis
	JWT   jwt.Service
	Guard *enrichment.Guard

	AuthUC           usecase.AuthUsecase
	SkillUC          usecase.SkillUsecase
	AssessmentUC     usecase.AssessmentUsecase
	ProficiencyUC    usecase.ProficiencyUsecase
	MatchingUC       usecase.MatchingUsecase
	JobUC            usecase.JobUsecase
	RecommendationUC usecase.RecommendationUsecase

	guardCancel context.CancelFunc
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrationsDir != "" {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	redis := cache.NewRedis(cfg.Redis, log)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	// The generator is optional: without an API key every enrichment write
	// lands with fallback values instead of generated ones.
	var gen enrichment.Generator
	if cfg.Gemini.APIKey != "" {
		g, err := enrichment.NewGeminiGenerator(ctx, cfg.Gemini)
		if err != nil {
			log.Warn("gemini unavailable, derived fields will use fallbacks", zap.Error(err))
		} else {
			gen = g
		}
	} else {
		log.Info("no gemini api key configured, derived fields will use fallbacks")
	}

	derivedRepo := repository.NewPostgresDerivedFieldRepository(db)
	guard := enrichment.NewGuard(gen, derivedRepo, redis, log.Named("enrichment"))
	guardCtx, guardCancel := context.WithCancel(context.Background())
	guard.Start(guardCtx, 2)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	assessmentRepo := repository.NewPostgresAssessmentRepository(db)
	attemptRepo := repository.NewPostgresAttemptRepository(db)
	proficiencyRepo := repository.NewPostgresProficiencyRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redis,
		JWT:    jwtSvc,
		Guard:  guard,

		AuthUC:           usecase.NewAuthUsecase(userRepo, jwtSvc),
		SkillUC:          usecase.NewSkillUsecase(skillRepo, redis, guard),
		AssessmentUC:     usecase.NewAssessmentUsecase(db, assessmentRepo, attemptRepo, proficiencyRepo),
		ProficiencyUC:    usecase.NewProficiencyUsecase(proficiencyRepo),
		MatchingUC:       usecase.NewMatchingUsecase(jobRepo, proficiencyRepo, profileRepo),
		JobUC:            usecase.NewJobUsecase(jobRepo, guard),
		RecommendationUC: usecase.NewRecommendationUsecase(jobRepo, proficiencyRepo, profileRepo),

		guardCancel: guardCancel,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Guard != nil {
		c.Guard.Close()
	}
	if c.guardCancel != nil {
		c.guardCancel()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
