// Package reader holds the per-screen state of one news reader: the
// selected topic, the list on screen, the loading flag and the user's
// favorites. It composes the search client and the favorites store; it
// owns no persisted data.
package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/profetadiario/noticias/app/config"
	"github.com/profetadiario/noticias/app/news"
	"github.com/profetadiario/noticias/app/session"
)

const (
	// WelcomeTopic is the masthead shown before any topic is selected.
	WelcomeTopic = "Profeta Diário"

	// FavoritesTopic is the pseudo-topic backed by the favorites store
	// instead of the search endpoint.
	FavoritesTopic = "Favoritos"
)

// Searcher is the news search dependency.
type Searcher interface {
	Search(ctx context.Context, query, topic string) []news.NewsItem
}

// FavoritesStore is the favorites persistence dependency.
type FavoritesStore interface {
	Save(ctx context.Context, uid, userEmail string, item news.NewsItem) error
	Remove(ctx context.Context, uid string, item news.NewsItem) error
	List(ctx context.Context, uid string) ([]news.NewsItem, error)
}

// State is a render-ready snapshot of the reader.
type State struct {
	CurrentTopic string          `json:"temaAtual"`
	Items        []news.NewsItem `json:"noticias"`
	Loading      bool            `json:"carregando"`
	Favorites    []news.NewsItem `json:"favoritos"`
	MenuOpen     bool            `json:"menuAberto"`
}

// Reader orchestrates one screen. Handlers run concurrently, so all state
// is guarded by the mutex; remote calls happen outside it, which keeps
// the original last-response-wins behavior when topics are switched
// rapidly.
type Reader struct {
	searcher Searcher
	favs     FavoritesStore
	topics   *config.TopicSet

	mu           sync.Mutex
	currentTopic string
	items        []news.NewsItem
	loading      bool
	favorites    []news.NewsItem
	menuOpen     bool
}

func New(searcher Searcher, favs FavoritesStore, topics *config.TopicSet) *Reader {
	return &Reader{
		searcher:     searcher,
		favs:         favs,
		topics:       topics,
		currentTopic: WelcomeTopic,
	}
}

// SelectTopic loads the content for a topic. The loading flag is set
// before any remote call is issued and cleared on every path, including
// failures; the screen must never stay stuck loading.
func (r *Reader) SelectTopic(ctx context.Context, name string, user *session.User) {
	r.mu.Lock()
	r.currentTopic = name
	r.loading = true
	r.mu.Unlock()

	var items []news.NewsItem

	switch {
	case name == FavoritesTopic:
		items = r.loadFavorites(ctx, user)
	default:
		items = r.loadTopic(ctx, name)
	}

	r.mu.Lock()
	r.items = items
	r.loading = false
	r.mu.Unlock()
}

// loadFavorites resolves the Favoritos pseudo-topic. Without a session no
// remote read is attempted; read failures degrade to a placeholder, never
// to a user-visible error.
func (r *Reader) loadFavorites(ctx context.Context, user *session.User) []news.NewsItem {
	if user == nil {
		return []news.NewsItem{favoritesPlaceholder("Entre com sua conta para favoritar notícias.")}
	}

	list, err := r.favs.List(ctx, user.UID)
	if err != nil {
		slog.Error("Failed to load favorites", "uid", user.UID, "error", err)
		return []news.NewsItem{{
			Title:       "Erro ao carregar favoritos",
			Description: "Tente novamente mais tarde.",
			PublishedAt: time.Now().Format(time.RFC3339),
			Topic:       FavoritesTopic,
		}}
	}

	r.mu.Lock()
	r.favorites = list
	r.mu.Unlock()

	if len(list) == 0 {
		return []news.NewsItem{favoritesPlaceholder("Suas notícias favoritas aparecerão aqui.")}
	}
	return list
}

// loadTopic resolves a news topic: a configured query goes to the search
// endpoint with the topic's placeholders as fallback; anything else gets
// placeholder content without an external call.
func (r *Reader) loadTopic(ctx context.Context, name string) []news.NewsItem {
	topic := r.topics.Get(name)
	if topic == nil {
		return placeholderItems(name, []config.Placeholder{config.GenericPlaceholder(name)})
	}
	if topic.Query == "" {
		return placeholderItems(name, topic.Placeholders)
	}

	results := r.searcher.Search(ctx, topic.Query, name)
	if len(results) == 0 {
		return placeholderItems(name, topic.Placeholders)
	}
	return results
}

// ToggleFavorite flips an item's favorite status, using title equality as
// item identity. Without a session it is a no-op. The remote operation is
// confirmed before local state changes; a remote failure is logged and
// swallowed, leaving the screen unchanged.
func (r *Reader) ToggleFavorite(ctx context.Context, item news.NewsItem, user *session.User) {
	if user == nil {
		return
	}

	r.mu.Lock()
	exists := false
	for _, f := range r.favorites {
		if news.SameItem(f, item) {
			exists = true
			break
		}
	}
	r.mu.Unlock()

	if exists {
		if err := r.favs.Remove(ctx, user.UID, item); err != nil {
			slog.Warn("Failed to remove favorite", "uid", user.UID, "title", item.Title, "error", err)
			return
		}
		r.mu.Lock()
		kept := r.favorites[:0:0]
		for _, f := range r.favorites {
			if !news.SameItem(f, item) {
				kept = append(kept, f)
			}
		}
		r.favorites = kept
		r.mu.Unlock()
		return
	}

	if err := r.favs.Save(ctx, user.UID, user.Email, item); err != nil {
		slog.Warn("Failed to save favorite", "uid", user.UID, "title", item.Title, "error", err)
		return
	}
	r.mu.Lock()
	r.favorites = append([]news.NewsItem{item}, r.favorites...)
	r.mu.Unlock()
}

// OpenMenu and CloseMenu track the side menu.
func (r *Reader) OpenMenu() { r.setMenu(true) }

func (r *Reader) CloseMenu() { r.setMenu(false) }

func (r *Reader) setMenu(open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menuOpen = open
}

// Reset returns the reader to the welcome screen.
func (r *Reader) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentTopic = WelcomeTopic
	r.items = nil
	r.menuOpen = false
}

// State returns a snapshot for rendering.
func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]news.NewsItem, len(r.items))
	copy(items, r.items)
	favorites := make([]news.NewsItem, len(r.favorites))
	copy(favorites, r.favorites)

	return State{
		CurrentTopic: r.currentTopic,
		Items:        items,
		Loading:      r.loading,
		Favorites:    favorites,
		MenuOpen:     r.menuOpen,
	}
}

func favoritesPlaceholder(description string) news.NewsItem {
	return news.NewsItem{
		Title:       "Nenhuma notícia favoritada",
		Description: description,
		PublishedAt: time.Now().Format(time.RFC3339),
		Topic:       FavoritesTopic,
	}
}

func placeholderItems(topic string, placeholders []config.Placeholder) []news.NewsItem {
	now := time.Now().Format(time.RFC3339)
	items := make([]news.NewsItem, 0, len(placeholders))
	for _, p := range placeholders {
		items = append(items, news.NewsItem{
			Title:       p.Title,
			Description: p.Description,
			PublishedAt: now,
			Topic:       topic,
		})
	}
	return items
}
