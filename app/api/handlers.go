package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/profetadiario/noticias/app/config"
	"github.com/profetadiario/noticias/app/reader"
	"github.com/profetadiario/noticias/app/session"
	"github.com/profetadiario/noticias/app/store"
)

func NewHandler(storeClient *store.Client, sessions *session.Manager,
	searcher reader.Searcher, favs reader.FavoritesStore,
	topics *config.TopicSet) *Handler {
	return &Handler{
		store:     storeClient,
		sessions:  sessions,
		searcher:  searcher,
		favs:      favs,
		topics:    topics,
		startedAt: time.Now(),
		readers:   make(map[string]*reader.Reader),
	}
}

// currentUser resolves the optional bearer token to a signed-in user.
func (h *Handler) currentUser(c *gin.Context) *session.User {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return nil
	}
	return h.sessions.Lookup(token)
}

func (h *Handler) SignIn(c *gin.Context) {
	var outcome session.Outcome
	if err := c.ShouldBindJSON(&outcome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sign-in payload"})
		return
	}

	token, user, err := h.sessions.SignIn(c.Request.Context(), outcome)
	switch {
	case errors.Is(err, session.ErrConfigurationMissing):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, session.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": session.ErrAuthenticationFailed.Error()})
		return
	case err != nil:
		slog.Error("Sign-in failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro inesperado ao entrar com Google."})
		return
	}

	if token == "" {
		// Cancelled by the user; not an error.
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, signInResponse{Token: token, User: user})
}

func (h *Handler) SignOut(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
		return
	}

	if err := h.sessions.SignOut(c.Request.Context(), token); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Sign-out failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível sair. Tente novamente em instantes."})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSession(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateReader(c *gin.Context) {
	id := uuid.NewString()

	h.mu.Lock()
	h.readers[id] = reader.New(h.searcher, h.favs, h.topics)
	h.mu.Unlock()

	slog.Debug("Reader created", "reader", id)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) readerByID(c *gin.Context) *reader.Reader {
	id := c.Param("id")

	h.mu.Lock()
	r := h.readers[id]
	h.mu.Unlock()

	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reader not found"})
	}
	return r
}

func (h *Handler) GetReaderState(c *gin.Context) {
	r := h.readerByID(c)
	if r == nil {
		return
	}
	c.JSON(http.StatusOK, r.State())
}

func (h *Handler) SelectTopic(c *gin.Context) {
	r := h.readerByID(c)
	if r == nil {
		return
	}

	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tema field"})
		return
	}

	r.SelectTopic(c.Request.Context(), req.Tema, h.currentUser(c))
	c.JSON(http.StatusOK, r.State())
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	r := h.readerByID(c)
	if r == nil {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Noticia.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing noticia field"})
		return
	}

	r.ToggleFavorite(c.Request.Context(), req.Noticia, h.currentUser(c))
	c.JSON(http.StatusOK, r.State())
}

func (h *Handler) SetMenu(c *gin.Context) {
	r := h.readerByID(c)
	if r == nil {
		return
	}

	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu payload"})
		return
	}

	if req.Aberto {
		r.OpenMenu()
	} else {
		r.CloseMenu()
	}
	c.JSON(http.StatusOK, r.State())
}

func (h *Handler) ResetReader(c *gin.Context) {
	r := h.readerByID(c)
	if r == nil {
		return
	}
	r.Reset()
	c.JSON(http.StatusOK, r.State())
}

func (h *Handler) DeleteReader(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	_, ok := h.readers[id]
	delete(h.readers, id)
	h.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reader not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if err := h.store.Ping(c.Request.Context()); err != nil {
		slog.Error("Document store health check failed", "error", err)
		health["status"] = "degraded"
		health["document_store"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	health["status"] = "ok"
	health["document_store"] = "ok"
	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	h.mu.Lock()
	readerCount := len(h.readers)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"uptime":  time.Since(h.startedAt).String(),
		"readers": readerCount,
		"topics":  h.topics.Count(),
	})
}
