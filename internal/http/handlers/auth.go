package handlers

import (
	"net/http"

	intconfig "busbooking/internal/config"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func Signup(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		svc := services.AuthService{
			Secret:    []byte(env.JWTSecret),
			RequestID: middleware.GetRequestID(c),
		}
		user, err := svc.Signup(req.Username, req.Password)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Signup successful! Please log in.",
			"user":    user,
		})
	}
}

// POST /api/auth/login
func Login(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		svc := services.AuthService{
			Secret:    []byte(env.JWTSecret),
			RequestID: middleware.GetRequestID(c),
		}
		token, user, err := svc.Login(req.Username, req.Password)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  user,
		})
	}
}
