package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"ferrybackend/internal/config"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/http/middleware"
	"ferrybackend/internal/repositories"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a signed token.
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "a valid email is required"})
		return
	}
	if len(req.Password) < 8 {
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "password must be at least 8 characters"})
		return
	}

	repo := repositories.UserRepository{DB: config.DB}
	if _, err := repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "email is already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to hash password", Err: err})
		return
	}

	user := repositories.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(c.Request.Context(), &user); err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := middleware.SignToken(user.ID, user.Email)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to sign token", Err: err})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "email": user.Email})
}

// Login verifies credentials and returns a signed token.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{DB: config.DB}
	user, err := repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := middleware.SignToken(user.ID, user.Email)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to sign token", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "email": user.Email})
}
