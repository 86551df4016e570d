package api

import (
	"sync"
	"time"

	"github.com/profetadiario/noticias/app/config"
	"github.com/profetadiario/noticias/app/news"
	"github.com/profetadiario/noticias/app/reader"
	"github.com/profetadiario/noticias/app/session"
	"github.com/profetadiario/noticias/app/store"
)

type Handler struct {
	store     *store.Client
	sessions  *session.Manager
	searcher  reader.Searcher
	favs      reader.FavoritesStore
	topics    *config.TopicSet
	startedAt time.Time

	mu      sync.Mutex
	readers map[string]*reader.Reader
}

type topicRequest struct {
	Tema string `json:"tema" binding:"required"`
}

type favoriteRequest struct {
	Noticia news.NewsItem `json:"noticia"`
}

type menuRequest struct {
	Aberto bool `json:"aberto"`
}

type signInResponse struct {
	Token string        `json:"token"`
	User  *session.User `json:"user"`
}
