package app

import (
	"errors"

	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/user"
)

func (h *Handlers) RegisterForm(*http.Request) (*http.Response, error) {
	return h.page(registerPage, status.OK, "")
}

// Register creates a new user. Failures aren't surfaced as error codes, the client is
// just sent back to the form.
func (h *Handlers) Register(request *http.Request) (*http.Response, error) {
	account := request.Params.Value("account")
	password := request.Params.Value("password")
	email := request.Params.Value("email")

	if len(account) == 0 || len(password) == 0 {
		return http.NewResponse().Redirect("/register"), nil
	}

	if _, found := h.users.FindByAccount(account); found {
		h.logger.Info().Str("account", account).Msg("account is already taken")
		return http.NewResponse().Redirect("/register"), nil
	}

	u, err := user.New(account, password, email, h.cfg.Users.BcryptCost)
	switch {
	case errors.Is(err, user.ErrPasswordTooLong):
		h.logger.Info().Str("account", account).Msg("password is too long")
		return http.NewResponse().Redirect("/register"), nil
	case err != nil:
		return nil, err
	}

	switch err = h.users.Save(u); {
	case errors.Is(err, user.ErrAccountExists):
		// someone was faster
		return http.NewResponse().Redirect("/register"), nil
	case err != nil:
		return nil, err
	}

	h.metrics.UsersRegistered.Inc()
	h.logger.Info().Str("account", account).Msg("user registered")

	return http.NewResponse().Redirect("/login"), nil
}
