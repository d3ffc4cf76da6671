// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"vendora/internal/apperr"
	"vendora/internal/auth"
	"vendora/internal/cache"
	"vendora/internal/middleware"
	"vendora/internal/models"
	"vendora/internal/store"
)

// Auth groups the registration, login and session handlers.
type Auth struct {
	users  *store.UserStore
	tokens *auth.Tokens
	cache  *cache.Cache
}

// NewAuth creates an Auth handler group.
func NewAuth(users *store.UserStore, tokens *auth.Tokens, c *cache.Cache) *Auth {
	return &Auth{users: users, tokens: tokens, cache: c}
}

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a buyer or seller account and returns a signed token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		writeError(w, apperr.Invalid("a valid email is required"))
		return
	}
	if len(in.Password) < 8 {
		writeError(w, apperr.Invalid("password must be at least 8 characters"))
		return
	}
	role := in.Role
	switch role {
	case "":
		role = models.RoleBuyer
	case models.RoleBuyer, models.RoleSeller:
	default:
		// Admin accounts are provisioned out of band.
		writeError(w, apperr.Invalid("role must be buyer or seller"))
		return
	}

	taken, err := h.users.EmailTaken(in.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if taken {
		writeError(w, apperr.Duplicate("email already registered"))
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.Create(&models.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// Login verifies credentials and returns a signed token. The response
// never distinguishes an unknown email from a wrong password.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.FindByEmail(in.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, in.Password) {
		writeError(w, apperr.Unauthorized("invalid credentials"))
		return
	}
	if !user.IsActive {
		writeError(w, apperr.Forbidden("account is disabled"))
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cache.SetJSON(r.Context(), cache.KeyUserSession(user.ID), user)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// Logout revokes the presented token by blacklisting it until it would
// have expired anyway.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	raw, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw != "" {
		h.cache.SetJSON(r.Context(), cache.KeyTokenBlacklist(raw), true)
	}
	if claims != nil {
		h.cache.Delete(r.Context(), cache.KeyUserSession(claims.UserID))
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Me returns the authenticated user's profile, read through the session
// cache.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	var cached models.User
	if h.cache.GetJSON(r.Context(), cache.KeyUserSession(claims.UserID), &cached) {
		writeJSON(w, http.StatusOK, &cached)
		return
	}

	user, err := h.users.FindByID(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apperr.NotFound("user"))
		return
	}

	h.cache.SetJSON(r.Context(), cache.KeyUserSession(user.ID), user)
	writeJSON(w, http.StatusOK, user)
}

type profileInput struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile updates the authenticated user's display fields.
func (h *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	user, err := h.users.FindByID(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apperr.NotFound("user"))
		return
	}

	var in profileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := h.users.UpdateProfile(user); err != nil {
		writeError(w, err)
		return
	}

	h.cache.Delete(r.Context(), cache.KeyUserSession(user.ID))
	writeJSON(w, http.StatusOK, user)
}
