package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/auth"
	"github.com/donelist-dev/donelist/internal/repository"
	"github.com/donelist-dev/donelist/internal/session"
	"github.com/donelist-dev/donelist/internal/types"
	"github.com/donelist-dev/donelist/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Package-wide wiring set once from main before the router starts.
var (
	Sessions     session.Store
	Logger       = zap.NewNop()
	ClientURL    string
	CookieSecure bool
	CookieMaxAge int
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// GoogleLogin sends the caller to the identity provider with a signed
// state parameter.
func GoogleLogin(ctx *gin.Context) {
	state, err := auth.GenerateState()

	if err != nil {
		Logger.Error("failed to generate state token", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Redirect(http.StatusFound, auth.AuthCodeURL(state))
}

// GoogleCallback converts a successful provider handshake into a user row
// and a session. Exactly one database write happens per callback; any
// failure aborts the handshake with no session established.
func GoogleCallback(ctx *gin.Context) {
	if err := auth.VerifyState(ctx.Query("state")); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired state"})
		return
	}

	code := ctx.Query("code")

	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}

	profile, err := auth.FetchProfile(ctx.Request.Context(), code)

	if err != nil {
		Logger.Error("failed to fetch provider profile", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to authenticate with provider"})
		return
	}

	user, err := repository.NewUserRepository(db.DB).ResolveFromProfile(ctx.Request.Context(), profile)

	if err != nil {
		if errors.Is(err, repository.ErrEmailMissing) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email not provided by Google"})
			return
		}
		Logger.Error("failed to resolve user from profile", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := establishSession(ctx, user.ID); err != nil {
		Logger.Error("failed to establish session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Redirect(http.StatusFound, ClientURL)
}

// Register creates a password-credentialed user and logs it in.
func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	repo := repository.NewUserRepository(db.DB)

	if _, err := repo.GetByEmail(ctx.Request.Context(), req.Email); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		Logger.Error("failed to check existing user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		Logger.Error("failed to hash password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := repo.Create(ctx.Request.Context(), req.Name, req.Email, string(passwordHash))

	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		Logger.Error("failed to create user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := establishSession(ctx, user.ID); err != nil {
		Logger.Error("failed to establish session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user": types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := repository.NewUserRepository(db.DB).GetByEmail(ctx.Request.Context(), req.Email)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		Logger.Error("failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := establishSession(ctx, user.ID); err != nil {
		Logger.Error("failed to establish session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func Logout(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(session.CookieName); err == nil && cookie != "" {
		if err := Sessions.Destroy(ctx.Request.Context(), cookie); err != nil {
			Logger.Error("failed to destroy session", zap.Error(err))
		}
	}

	setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := repository.NewUserRepository(db.DB).GetByID(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		// The account can be soft-deleted between the session lookup and
		// this read; that caller is no longer authenticated.
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		Logger.Error("failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Avatar:    user.Avatar,
			LastLogin: utils.FormatTimestamp(user.LastLogin),
		},
	})
}

func establishSession(ctx *gin.Context, userID uint) error {
	id, err := Sessions.Create(ctx.Request.Context(), userID)

	if err != nil {
		return err
	}

	setSessionCookie(ctx, id, CookieMaxAge)
	return nil
}

func setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
