package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/service/session"
)

func (s *server) sessionFor(r *http.Request) *session.Store {
	return s.sessions.For(profileFrom(r.Context()))
}

func (s *server) getSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newSessionView(s.sessionFor(r)))
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var form session.LoginForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.authenticate(w, r, form.Validate)
}

func (s *server) register(w http.ResponseWriter, r *http.Request) {
	var form session.RegistrationForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.authenticate(w, r, form.Validate)
}

func (s *server) authenticate(w http.ResponseWriter, r *http.Request, validate func() (domain.Identity, error)) {
	identity, err := validate()
	if err != nil {
		if !respondValidation(w, err) {
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	store := s.sessionFor(r)
	store.Login(identity)
	respondJSON(w, http.StatusOK, newSessionView(store))
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	store := s.sessionFor(r)
	store.Logout()
	respondJSON(w, http.StatusOK, newSessionView(store))
}
