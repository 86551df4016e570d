package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/profetadiario/noticias/app/config"
	"github.com/profetadiario/noticias/app/favorites"
	"github.com/profetadiario/noticias/app/news"
	"github.com/profetadiario/noticias/app/session"
)

type stubSearcher struct {
	results map[string][]news.NewsItem
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, query, topic string) []news.NewsItem {
	s.calls++
	return s.results[topic]
}

type stubFavorites struct {
	stored    map[string]news.NewsItem
	listErr   error
	saveErr   error
	removeErr error
	listCalls int
}

func newStubFavorites() *stubFavorites {
	return &stubFavorites{stored: make(map[string]news.NewsItem)}
}

func (s *stubFavorites) Save(ctx context.Context, uid, userEmail string, item news.NewsItem) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored[favorites.BuildFavoriteID(item)] = item
	return nil
}

func (s *stubFavorites) Remove(ctx context.Context, uid string, item news.NewsItem) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.stored, favorites.BuildFavoriteID(item))
	return nil
}

func (s *stubFavorites) List(ctx context.Context, uid string) ([]news.NewsItem, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	items := make([]news.NewsItem, 0, len(s.stored))
	for _, item := range s.stored {
		items = append(items, item)
	}
	return items, nil
}

func testTopics(t *testing.T) *config.TopicSet {
	t.Helper()
	topics, err := config.NewLoader("").LoadAll()
	if err != nil {
		t.Fatalf("failed to load topics: %v", err)
	}
	return topics
}

func TestSelectTopic_EmptySearchFallsBackToPlaceholders(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]news.NewsItem{}}
	r := New(searcher, newStubFavorites(), testTopics(t))

	r.SelectTopic(context.Background(), "Economia", nil)

	state := r.State()
	if state.Loading {
		t.Error("Expected loading flag cleared after topic selection")
	}
	if len(state.Items) != 4 {
		t.Fatalf("Expected the 4 Economia placeholders, got %d items", len(state.Items))
	}

	wantTitles := []string{"Juros em Debate", "Inflação Sobe", "Câmbio Oscila", "Mercado de Trabalho"}
	for i, want := range wantTitles {
		if state.Items[i].Title != want {
			t.Errorf("Placeholder %d: expected %q, got %q", i, want, state.Items[i].Title)
		}
		if state.Items[i].Topic != "Economia" {
			t.Errorf("Placeholder %d: expected topic Economia, got %q", i, state.Items[i].Topic)
		}
	}
	if searcher.calls != 1 {
		t.Errorf("Expected exactly one search call, got %d", searcher.calls)
	}
}

func TestSelectTopic_SearchResultsWin(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]news.NewsItem{
		"Tecnologia": {
			{Title: "IA generativa avança", Topic: "Tecnologia"},
			{Title: "Novo framework Go", Topic: "Tecnologia"},
		},
	}}
	r := New(searcher, newStubFavorites(), testTopics(t))

	r.SelectTopic(context.Background(), "Tecnologia", nil)

	state := r.State()
	if len(state.Items) != 2 {
		t.Fatalf("Expected 2 search results, got %d items", len(state.Items))
	}
	if state.Items[0].Title != "IA generativa avança" {
		t.Errorf("Unexpected first item: %q", state.Items[0].Title)
	}
	if state.CurrentTopic != "Tecnologia" {
		t.Errorf("Expected current topic Tecnologia, got %q", state.CurrentTopic)
	}
}

func TestSelectTopic_UnknownTopicUsesGenericPlaceholder(t *testing.T) {
	searcher := &stubSearcher{}
	r := New(searcher, newStubFavorites(), testTopics(t))

	r.SelectTopic(context.Background(), "Esportes", nil)

	state := r.State()
	if searcher.calls != 0 {
		t.Errorf("Expected no search call for unknown topic, got %d", searcher.calls)
	}
	if len(state.Items) != 1 {
		t.Fatalf("Expected single generic placeholder, got %d items", len(state.Items))
	}
	if state.Items[0].Title != "Notícia de Esportes" {
		t.Errorf("Unexpected generic placeholder title: %q", state.Items[0].Title)
	}
}

func TestSelectTopic_FavoritesWithoutSession(t *testing.T) {
	favs := newStubFavorites()
	r := New(&stubSearcher{}, favs, testTopics(t))

	r.SelectTopic(context.Background(), FavoritesTopic, nil)

	state := r.State()
	if favs.listCalls != 0 {
		t.Errorf("Expected no remote read without a session, got %d", favs.listCalls)
	}
	if len(state.Items) != 1 {
		t.Fatalf("Expected exactly one placeholder item, got %d", len(state.Items))
	}
	if state.Items[0].Title != "Nenhuma notícia favoritada" {
		t.Errorf("Unexpected placeholder title: %q", state.Items[0].Title)
	}
	if state.Loading {
		t.Error("Expected loading flag cleared")
	}
}

func TestSelectTopic_FavoritesReadFailure(t *testing.T) {
	favs := newStubFavorites()
	favs.listErr = errors.New("connection reset")
	r := New(&stubSearcher{}, favs, testTopics(t))

	r.SelectTopic(context.Background(), FavoritesTopic, &session.User{UID: "u1"})

	state := r.State()
	if len(state.Items) != 1 || state.Items[0].Title != "Erro ao carregar favoritos" {
		t.Errorf("Expected error placeholder, got %+v", state.Items)
	}
	if state.Loading {
		t.Error("Expected loading flag cleared on failure path")
	}
}

func TestSelectTopic_FavoritesListed(t *testing.T) {
	favs := newStubFavorites()
	item := news.NewsItem{Title: "Juros em Debate", Topic: "Economia"}
	favs.stored[favorites.BuildFavoriteID(item)] = item

	r := New(&stubSearcher{}, favs, testTopics(t))
	r.SelectTopic(context.Background(), FavoritesTopic, &session.User{UID: "u1"})

	state := r.State()
	if len(state.Items) != 1 || state.Items[0].Title != "Juros em Debate" {
		t.Errorf("Expected stored favorite to be listed, got %+v", state.Items)
	}
	if len(state.Favorites) != 1 {
		t.Errorf("Expected favorites state populated, got %d", len(state.Favorites))
	}
}

func TestToggleFavorite_AddsAndPrepends(t *testing.T) {
	favs := newStubFavorites()
	r := New(&stubSearcher{}, favs, testTopics(t))
	user := &session.User{UID: "u1", Email: "leitor@example.com"}

	first := news.NewsItem{Title: "Primeira", Topic: "Economia"}
	second := news.NewsItem{Title: "X", Topic: "Cultura"}

	r.ToggleFavorite(context.Background(), first, user)
	r.ToggleFavorite(context.Background(), second, user)

	state := r.State()
	if len(state.Favorites) != 2 {
		t.Fatalf("Expected 2 favorites, got %d", len(state.Favorites))
	}
	if state.Favorites[0].Title != "X" {
		t.Errorf("Expected newest favorite first, got %q", state.Favorites[0].Title)
	}
	if _, ok := favs.stored[favorites.BuildFavoriteID(second)]; !ok {
		t.Error("Expected remote write at the deterministic favorite key")
	}
}

func TestToggleFavorite_RemovesExisting(t *testing.T) {
	favs := newStubFavorites()
	r := New(&stubSearcher{}, favs, testTopics(t))
	user := &session.User{UID: "u1"}

	item := news.NewsItem{Title: "Câmbio Oscila", Topic: "Economia"}
	r.ToggleFavorite(context.Background(), item, user)
	if len(r.State().Favorites) != 1 {
		t.Fatal("Expected item to be favorited")
	}

	// Same title, different description: still the same item
	r.ToggleFavorite(context.Background(), news.NewsItem{Title: "Câmbio Oscila", Description: "outra"}, user)

	state := r.State()
	if len(state.Favorites) != 0 {
		t.Errorf("Expected favorite removed, got %d", len(state.Favorites))
	}
	if len(favs.stored) != 0 {
		t.Error("Expected remote delete at the deterministic favorite key")
	}
}

func TestToggleFavorite_NoSessionIsNoOp(t *testing.T) {
	favs := newStubFavorites()
	r := New(&stubSearcher{}, favs, testTopics(t))

	r.ToggleFavorite(context.Background(), news.NewsItem{Title: "Qualquer"}, nil)

	if len(favs.stored) != 0 {
		t.Error("Expected no remote write without a session")
	}
	if len(r.State().Favorites) != 0 {
		t.Error("Expected no local change without a session")
	}
}

func TestToggleFavorite_RemoteFailureLeavesStateUnchanged(t *testing.T) {
	favs := newStubFavorites()
	favs.saveErr = errors.New("write timeout")
	r := New(&stubSearcher{}, favs, testTopics(t))

	r.ToggleFavorite(context.Background(), news.NewsItem{Title: "Falha"}, &session.User{UID: "u1"})

	if len(r.State().Favorites) != 0 {
		t.Error("Expected local state unchanged when the remote write fails")
	}
}

func TestMenuAndReset(t *testing.T) {
	r := New(&stubSearcher{}, newStubFavorites(), testTopics(t))

	r.OpenMenu()
	if !r.State().MenuOpen {
		t.Error("Expected menu open")
	}

	r.SelectTopic(context.Background(), "Cultura", nil)
	r.Reset()

	state := r.State()
	if state.MenuOpen {
		t.Error("Expected menu closed after reset")
	}
	if state.CurrentTopic != WelcomeTopic {
		t.Errorf("Expected welcome topic after reset, got %q", state.CurrentTopic)
	}
	if len(state.Items) != 0 {
		t.Errorf("Expected items cleared after reset, got %d", len(state.Items))
	}
}
