// Package app assembles the modules into the HTTP application.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/apperror"
	authHandler "github.com/festy23/as_manager/internal/auth/handler"
	"github.com/festy23/as_manager/internal/auth/hasher"
	authRouter "github.com/festy23/as_manager/internal/auth/router"
	authService "github.com/festy23/as_manager/internal/auth/service"
	"github.com/festy23/as_manager/internal/auth/session"
	"github.com/festy23/as_manager/internal/auth/token"
	"github.com/festy23/as_manager/internal/config"
	eventHandler "github.com/festy23/as_manager/internal/event/handler"
	eventRepository "github.com/festy23/as_manager/internal/event/repository"
	eventRouter "github.com/festy23/as_manager/internal/event/router"
	eventService "github.com/festy23/as_manager/internal/event/service"
	"github.com/festy23/as_manager/internal/health"
	"github.com/festy23/as_manager/internal/middleware"
	platoonHandler "github.com/festy23/as_manager/internal/platoon/handler"
	platoonRepository "github.com/festy23/as_manager/internal/platoon/repository"
	platoonRouter "github.com/festy23/as_manager/internal/platoon/router"
	platoonService "github.com/festy23/as_manager/internal/platoon/service"
	playerHandler "github.com/festy23/as_manager/internal/player/handler"
	playerRepository "github.com/festy23/as_manager/internal/player/repository"
	playerRouter "github.com/festy23/as_manager/internal/player/router"
	playerService "github.com/festy23/as_manager/internal/player/service"
	statisticsHandler "github.com/festy23/as_manager/internal/statistics/handler"
	statisticsRepository "github.com/festy23/as_manager/internal/statistics/repository"
	statisticsRouter "github.com/festy23/as_manager/internal/statistics/router"
	statisticsService "github.com/festy23/as_manager/internal/statistics/service"
	teamHandler "github.com/festy23/as_manager/internal/team/handler"
	teamRepository "github.com/festy23/as_manager/internal/team/repository"
	teamRouter "github.com/festy23/as_manager/internal/team/router"
	teamService "github.com/festy23/as_manager/internal/team/service"
	"github.com/festy23/as_manager/internal/web"
)

// ErrPageNotFound is returned for unknown routes.
var ErrPageNotFound = apperror.New(apperror.CodeNotFound, "page not found")

// Deps holds the long-lived resources the application is built from.
type Deps struct {
	Config   config.Config
	DB       *gorm.DB
	Sessions session.Store
	Logger   *zap.SugaredLogger
}

// Services are the domain services shared by the HTTP and CLI front ends.
type Services struct {
	Players    playerService.Service
	Teams      teamService.Service
	Platoons   platoonService.Service
	Events     eventService.Service
	Statistics statisticsService.Service
	Auth       authService.Service
	Tokens     *token.Issuer
}

// NewServices wires repositories and services on top of db.
func NewServices(deps Deps) (*Services, error) {
	h, err := hasher.New(deps.Config.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	log := deps.Logger
	players := playerService.New(playerRepository.New(deps.DB, log), h, log)
	teams := teamService.New(teamRepository.New(deps.DB, log), deps.DB, log)

	return &Services{
		Players:    players,
		Teams:      teams,
		Platoons:   platoonService.New(platoonRepository.New(deps.DB, log), players, teams, log),
		Events:     eventService.New(eventRepository.New(deps.DB, log), players, log),
		Statistics: statisticsService.New(statisticsRepository.New(deps.DB, log), log),
		Auth:       authService.New(players, h, deps.Sessions, deps.Config.Session.TTL, log),
		Tokens:     token.New(deps.Config.Auth),
	}, nil
}

// NewRouter builds the gin engine with every module registered.
//
// Pages other than login and registration require a session. API
// endpoints accept a session cookie or a bearer token, except
// POST /api/token which issues tokens.
func NewRouter(deps Deps) (*gin.Engine, error) {
	svc, err := NewServices(deps)
	if err != nil {
		return nil, err
	}
	log := deps.Logger

	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(web.MustTemplates())
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log, deps.Config.Logger.LogsRequest),
		middleware.Recovery(log),
		web.FlashMiddleware(),
		middleware.LoadSession(svc.Auth, deps.Config.Session.CookieName, log),
	)

	r.GET("/health", health.New(deps.DB, deps.Sessions, log).Check)

	public := r.Group("")
	pages := r.Group("", middleware.RequireSession())
	publicAPI := r.Group("/api")
	api := r.Group("/api", middleware.RequireAPIAuth(svc.Tokens))

	authRouter.RegisterRoutes(public, pages, publicAPI,
		authHandler.New(svc.Auth, svc.Tokens, deps.Config.Session, log))
	playerRouter.RegisterRoutes(pages, api,
		playerHandler.New(svc.Players, svc.Teams, log))
	teamRouter.RegisterRoutes(pages, api,
		teamHandler.New(svc.Teams, svc.Players, svc.Platoons, log))
	platoonRouter.RegisterRoutes(pages, api,
		platoonHandler.New(svc.Platoons, svc.Players, log))
	eventRouter.RegisterRoutes(pages, api,
		eventHandler.New(svc.Events, log))
	statisticsRouter.RegisterRoutes(pages, api,
		statisticsHandler.New(svc.Statistics, log))

	r.NoRoute(func(c *gin.Context) {
		if web.IsAPI(c) {
			web.JSONError(c, ErrPageNotFound)
			return
		}
		web.RenderError(c, ErrPageNotFound)
	})

	return r, nil
}

// NewSessionStore opens the session backend selected by cfg. The
// returned close function releases its connections.
func NewSessionStore(ctx context.Context, cfg config.SessionConfig, logger *zap.SugaredLogger) (session.Store, func() error, error) {
	if cfg.Store != config.SessionStoreRedis {
		logger.Infow("using in-memory session store")
		return session.NewMemoryStore(), func() error { return nil }, nil
	}

	client, err := session.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	store := session.NewRedisStore(client)
	return store, store.Close, nil
}
