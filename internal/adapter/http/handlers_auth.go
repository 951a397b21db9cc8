// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"

	"webstore/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
)

type credentials struct {
	Email     string `json:"email"`
	FirstName string `json:"first-name"`
	LastName  string `json:"last-name"`
	Password  string `json:"password"`
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := parseJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, app.MsgEmptyFields)
		return
	}

	u, err := s.authSvc.Signup(r.Context(), app.SignupRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeOK(w, map[string]any{"email": u.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := parseJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, app.MsgEmptyFields)
		return
	}

	token, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeOK(w, map[string]any{"msg": "Credentials ok", "json-web-token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	subject, _ := SubjectFromContext(r.Context())
	if err := s.authSvc.Logout(r.Context(), r.Header.Get("Authorization")); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("logout", zap.String("subject", subject))
	writeOK(w, map[string]any{})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled": s.oidcConfig.Enabled,
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
	http.Redirect(w, r, s.oidcConfig.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}

	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	token, err := s.oidcConfig.OAuth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.log.Warn("sso code exchange failed", zap.Error(err))
		http.Error(w, "failed to exchange token", http.StatusInternalServerError)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "no id_token", http.StatusInternalServerError)
		return
	}

	idToken, err := s.oidcConfig.Provider.Verifier(&oidc.Config{ClientID: s.oidcConfig.OAuth2Config.ClientID}).Verify(r.Context(), rawIDToken)
	if err != nil {
		s.log.Warn("sso id token rejected", zap.Error(err))
		http.Error(w, "failed to verify token", http.StatusInternalServerError)
		return
	}

	var claims ssoClaims
	if err = idToken.Claims(&claims); err != nil {
		http.Error(w, "failed to parse claims", http.StatusInternalServerError)
		return
	}
	s.completeSSO(w, r, claims)
}

type ssoClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// completeSSO signs in the identity asserted by a verified ID token. Only a
// provider-verified email may be bound to a local account.
func (s *Server) completeSSO(w http.ResponseWriter, r *http.Request, claims ssoClaims) {
	if !claims.EmailVerified {
		s.log.Warn("sso email not verified", zap.String("email", claims.Email))
		http.Error(w, "email not verified", http.StatusForbidden)
		return
	}

	sessionToken, err := s.authSvc.LoginWithSSO(r.Context(), claims.Email, claims.GivenName, claims.FamilyName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// The client reads the token from the fragment and sends it back in the
	// Authorization header like a password login.
	http.Redirect(w, r, "/#json-web-token="+url.QueryEscape(sessionToken), http.StatusFound)
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
