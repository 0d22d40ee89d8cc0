package app

import (
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/cookie"
	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/session"
)

// LoginForm redirects clients with a valid session home. Others are served the form,
// and a stale session cookie is cleared.
func (h *Handlers) LoginForm(request *http.Request) (*http.Response, error) {
	sess, presented := h.currentSession(request)
	if sess != nil {
		return http.NewResponse().Redirect(homePage), nil
	}

	response, err := h.page(loginPage, status.OK, "")
	if err != nil {
		return nil, err
	}

	if presented {
		h.logger.Info().
			Str("remote", request.Remote).
			Msg("clearing stale session cookie")
		response.Cookie(cookie.Expired(h.cfg.Session.CookieName))
	}

	return response, nil
}

// Login authenticates the client and binds a new session to it. A client already holding
// a valid session is redirected home without creating another one.
func (h *Handlers) Login(request *http.Request) (*http.Response, error) {
	account := request.Params.Value("account")
	password := request.Params.Value("password")

	u, found := h.users.FindByAccount(account)
	if !found || !u.CheckPassword(password) {
		h.logger.Info().
			Str("remote", request.Remote).
			Str("account", account).
			Msg("login failed")

		return h.unauthorized()
	}

	if sess, _ := h.currentSession(request); sess != nil {
		h.logger.Debug().
			Str("account", account).
			Str("session", sess.ID).
			Msg("already logged in")

		return http.NewResponse().Redirect(homePage), nil
	}

	sess := session.New(session.NewID(h.cfg.Session.IDLength)).
		SetAttribute(userAttribute, u.Account)
	h.sessions.Add(sess)
	h.metrics.SessionsCreated.Inc()

	h.logger.Info().
		Str("remote", request.Remote).
		Str("account", account).
		Msg("login success")

	return http.NewResponse().
		Redirect(homePage).
		Cookie(h.sessionCookie(sess.ID)).
		String("Login success"), nil
}
