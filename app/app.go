package app

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/indigo-web/catalina/config"
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/cookie"
	"github.com/indigo-web/catalina/http/method"
	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/internal/metrics"
	"github.com/indigo-web/catalina/resource"
	"github.com/indigo-web/catalina/router"
	"github.com/indigo-web/catalina/session"
	"github.com/indigo-web/catalina/user"
)

const (
	homePage     = "/index.html"
	loginPage    = "/login.html"
	registerPage = "/register.html"
	notFoundPage = "/404.html"
	unauthPage   = "/401.html"

	userAttribute = "user"
)

// Handlers holds everything the handlers depend on. All the dependencies are safe for
// concurrent use, so a single instance serves all the connections.
type Handlers struct {
	cfg      *config.Config
	logger   zerolog.Logger
	sessions *session.Registry
	users    user.Repository
	static   resource.Provider
	metrics  *metrics.Metrics
}

func New(
	cfg *config.Config,
	logger zerolog.Logger,
	sessions *session.Registry,
	users user.Repository,
	static resource.Provider,
	m *metrics.Metrics,
) *Handlers {
	return &Handlers{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		users:    users,
		static:   static,
		metrics:  m,
	}
}

// Routes builds the route table. The static handler matches everything, so it goes last.
func (h *Handlers) Routes() *router.Table {
	return router.New(
		router.NewRoute(router.MethodPath(method.GET, "/"), h.Root),
		router.NewRoute(router.Path("/login"), router.Methods{
			method.GET:  h.LoginForm,
			method.POST: h.Login,
		}.Handle),
		router.NewRoute(router.Path("/register"), router.Methods{
			method.GET:  h.RegisterForm,
			method.POST: h.Register,
		}.Handle),
		router.NewRoute(router.Any(), router.Methods{
			method.GET: h.Static,
		}.Handle),
	)
}

// Root serves the greeting.
func (h *Handlers) Root(*http.Request) (*http.Response, error) {
	return http.NewResponse().String("Hello world!"), nil
}

// currentSession returns the session the request's cookie names. The bool reports
// whether the cookie was presented at all, so a stale cookie is one that was presented
// while the session wasn't found.
func (h *Handlers) currentSession(request *http.Request) (sess *session.Session, presented bool) {
	id, presented := request.Cookie(h.cfg.Session.CookieName)
	if !presented {
		return nil, false
	}

	sess, _ = h.sessions.Find(id)
	return sess, true
}

func (h *Handlers) sessionCookie(id string) cookie.Cookie {
	return cookie.Build(h.cfg.Session.CookieName, id).
		Path("/").
		MaxAge(h.cfg.Session.CookieMaxAge).
		HttpOnly(true).
		Cookie()
}

// page responds with the resource with the given code. If the resource is missing,
// the fallback is used as the body.
func (h *Handlers) page(path string, code status.Code, fallback string) (*http.Response, error) {
	data, err := h.static.Resolve(path)
	switch {
	case err == nil:
		return http.NewResponse().Code(code).Bytes(data), nil
	case errors.Is(err, resource.ErrNotFound):
		h.logger.Warn().Str("page", path).Msg("page is missing, using the fallback")
		return http.NewResponse().Code(code).String(fallback), nil
	default:
		return nil, err
	}
}

func (h *Handlers) notFound() (*http.Response, error) {
	return h.page(notFoundPage, status.NotFound, "404 Not Found")
}

func (h *Handlers) unauthorized() (*http.Response, error) {
	return h.page(unauthPage, status.Unauthorized, "401 Unauthorized")
}
