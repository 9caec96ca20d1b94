package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler    http.Handler
	logger     *zap.SugaredLogger
	randSource io.Reader

	jwts          jwtManager
	refreshTokens refreshTokenRepository

	db    database.PGX
	users userRepository

	authService          authService
	calendarService      calendarService
	invitesService       invitesService
	notificationsService notificationsService
}

type jwtManager interface {
	CreateToken(id int64) (string, error)
	GetIdFromToken(token string) (int64, error)
}

type refreshTokenRepository interface {
	Add(ctx context.Context, session string, id int64) error
	Get(ctx context.Context, session string) (int64, error)
	Refresh(ctx context.Context, old, new string) error
	Delete(ctx context.Context, session string) error
	DeleteExpired(ctx context.Context) error
	DeleteByUserID(ctx context.Context, id int64) error
}

type userRepository interface {
	GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, q database.Queryable, username string) (*model.User, error)
}

type authService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type calendarService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	ImportEvent(ctx context.Context, actorID int64, event *model.Event) (*model.Event, error)
	EventByID(ctx context.Context, id int64) (*model.Event, error)
	UpdateEvent(ctx context.Context, actorID, id int64, update *model.EventUpdate) (*model.Event, error)
	DeleteEvent(ctx context.Context, actorID, id int64) error
	EventsInRange(ctx context.Context, ownerID int64, from, to time.Time) ([]model.DaySchedule, error)
	DayEvents(ctx context.Context, ownerID int64, day time.Time) ([]model.DaySchedule, error)
	ComingEvents(ctx context.Context, ownerID int64, now time.Time) ([]model.DaySchedule, error)
}

type invitesService interface {
	Invite(ctx context.Context, actorID, eventID int64, userIDs []int64) error
	Pending(ctx context.Context, userID int64) ([]*model.Event, error)
	Accept(ctx context.Context, userID, eventID int64) error
	Decline(ctx context.Context, userID, eventID int64) error
	RemoveParticipants(ctx context.Context, actorID, eventID int64, userIDs []int64) error
	Leave(ctx context.Context, userID, eventID int64) error
}

type notificationsService interface {
	DrainUnread(ctx context.Context, userID int64) ([]*model.Notification, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	randSource io.Reader,
	jwts jwtManager,
	refreshTokens refreshTokenRepository,
	db database.PGX,
	users userRepository,
	authService authService,
	calendarService calendarService,
	invitesService invitesService,
	notificationsService notificationsService,
) (*Api, error) {
	a := &Api{
		logger:               logger,
		randSource:           randSource,
		jwts:                 jwts,
		refreshTokens:        refreshTokens,
		db:                   db,
		users:                users,
		authService:          authService,
		calendarService:      calendarService,
		invitesService:       invitesService,
		notificationsService: notificationsService,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.registerUserHandler)
		r.Post("/login", a.loginUserHandler)
		r.Post("/refresh", a.refreshTokenHandler)
		r.Post("/logout", a.logoutUserHandler)
	})

	r.With(a.auth).Route("/", func(r chi.Router) {
		r.With(a.userCtx).Route("/user", func(r chi.Router) {
			r.Get("/", a.getUserHandler)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", a.createEventHandler)
			r.Post("/import", a.importEventHandler)
			r.Get("/", a.getEventsInRangeHandler)
			r.Get("/today", a.getTodayEventsHandler)
			r.Get("/upcoming", a.getUpcomingEventsHandler)

			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", a.getEventHandler)
				r.Patch("/", a.updateEventHandler)
				r.Delete("/", a.deleteEventHandler)
				r.Post("/invite", a.inviteHandler)
				r.Post("/remove", a.removeParticipantsHandler)
				r.Post("/leave", a.leaveEventHandler)
			})
		})

		r.Route("/invites", func(r chi.Router) {
			r.Get("/", a.getPendingInvitesHandler)
			r.Post("/{eventID}/accept", a.acceptInviteHandler)
			r.Post("/{eventID}/decline", a.declineInviteHandler)
		})

		r.Get("/notifications", a.getNotificationsHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
