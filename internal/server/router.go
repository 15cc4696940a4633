package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/daydesk/daydesk/internal/state"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const userIDContextKey = "daydesk_user_id"

var (
	errMissingStore         = errors.New("state store dependency required")
	errMissingSessions      = errors.New("session issuer dependency required")
	errInvalidAuthorization = errors.New("authorization header missing or invalid")
)

// SessionTokens issues and validates the bearer tokens guarding the API.
type SessionTokens interface {
	IssueSessionToken(userID string) (string, int64, error)
	ValidateToken(token string) (string, error)
}

// Dependencies wires the HTTP surface to the application core.
type Dependencies struct {
	Store    *state.Store
	Sessions SessionTokens
	Logger   *zap.Logger
}

// NewHTTPHandler builds the gin handler serving the shell API.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Store == nil {
		return nil, errMissingStore
	}
	if deps.Sessions == nil {
		return nil, errMissingSessions
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		store:    deps.Store,
		sessions: deps.Sessions,
		logger:   logger,
	}

	router.POST("/auth/session", handler.handleSignIn)

	protected := router.Group("/")
	protected.Use(handler.authorizeRequest)
	protected.DELETE("/auth/session", handler.handleSignOut)
	protected.GET("/state", handler.handleState)
	protected.GET("/events", handler.handleEvents)

	protected.POST("/todos", handler.handleAddTodo)
	protected.POST("/todos/reorder", handler.handleReorderTodos)
	protected.PATCH("/todos/:id", handler.handleUpdateTodo)
	protected.DELETE("/todos/:id", handler.handleDeleteTodo)

	protected.POST("/notes", handler.handleAddNote)
	protected.PATCH("/notes/:id", handler.handleUpdateNote)
	protected.DELETE("/notes/:id", handler.handleDeleteNote)

	protected.POST("/habits", handler.handleAddHabit)
	protected.PATCH("/habits/:id", handler.handleUpdateHabit)
	protected.DELETE("/habits/:id", handler.handleDeleteHabit)
	protected.POST("/habits/:id/toggle", handler.handleToggleHabit)

	protected.POST("/drawings", handler.handleAddDrawingPad)
	protected.PATCH("/drawings/:id", handler.handleUpdateDrawingPad)
	protected.DELETE("/drawings/:id", handler.handleDeleteDrawingPad)

	protected.POST("/files", handler.handleAddFile)
	protected.DELETE("/files/:id", handler.handleDeleteFile)

	protected.GET("/notifications", handler.handleListNotifications)
	protected.DELETE("/notifications/:id", handler.handleRemoveNotification)
	protected.DELETE("/notifications", handler.handleClearNotifications)

	protected.PUT("/view", handler.handleSetView)
	protected.PUT("/sidebar", handler.handleSetSidebar)

	return router, nil
}

type httpHandler struct {
	store    *state.Store
	sessions SessionTokens
	logger   *zap.Logger
}

type signInRequestPayload struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type signInResponsePayload struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	TokenType   string      `json:"token_type"`
	User        *state.User `json:"user"`
}

func (h *httpHandler) handleSignIn(c *gin.Context) {
	var request signInRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	user := h.store.SignIn(request.Email, request.Name, request.Avatar)
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	token, expiresIn, err := h.sessions.IssueSessionToken(user.ID)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_issue_failed"})
		return
	}

	c.JSON(http.StatusOK, signInResponsePayload{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
		User:        user,
	})
}

func (h *httpHandler) handleSignOut(c *gin.Context) {
	h.store.SignOut()
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *httpHandler) authorizeRequest(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuthorization.Error()})
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuthorization.Error()})
		return
	}
	subject, err := h.sessions.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Info("token validation failed", zap.Error(err))
		} else {
			h.logger.Warn("token validation failed", zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(userIDContextKey, subject)
	c.Next()
}
