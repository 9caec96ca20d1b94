package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"

	"github.com/dsmelov/calendar-backend/internal/api"
	auth_service "github.com/dsmelov/calendar-backend/internal/business/auth"
	calendar_service "github.com/dsmelov/calendar-backend/internal/business/calendar"
	invites_service "github.com/dsmelov/calendar-backend/internal/business/invites"
	notifications_service "github.com/dsmelov/calendar-backend/internal/business/notifications"
	"github.com/dsmelov/calendar-backend/internal/config"
	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/database/events"
	"github.com/dsmelov/calendar-backend/internal/database/notification"
	"github.com/dsmelov/calendar-backend/internal/database/user"
	"github.com/dsmelov/calendar-backend/internal/pkg/jwt"
	"github.com/dsmelov/calendar-backend/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	jwts := jwt.NewManger()

	redisPool := redis.NewRedisPool(logger)
	refreshTokens := redis.NewRefreshTokenRepository(redisPool, logger)

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initialize db", "err", err)
	}
	usersRepository := user.NewRepository()
	eventsRepository := events.NewRepository()
	notificationsRepository := notification.NewRepository()

	authService := auth_service.NewService(db, usersRepository)
	calendarService := calendar_service.NewService(
		db,
		eventsRepository,
		notificationsRepository,
		config.MaxQueryWindowDays(),
		config.MaxOccurrences(),
	)
	invitesService := invites_service.NewService(db, eventsRepository, usersRepository, notificationsRepository)
	notificationsService := notifications_service.NewService(db, notificationsRepository)

	api, err := api.NewApi(
		logger,
		rand.Reader,
		jwts,
		refreshTokens,
		db,
		usersRepository,
		authService,
		calendarService,
		invitesService,
		notificationsService,
	)
	if err != nil {
		logger.Fatalw("error initiating api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
