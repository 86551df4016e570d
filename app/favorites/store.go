// Package favorites persists per-user saved news items in the document
// store. The package holds no in-memory state: the store is the single
// owner of favorites, and every operation goes straight to it.
package favorites

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/profetadiario/noticias/app/news"
	"github.com/profetadiario/noticias/app/store"
)

// maxFavoriteIDLength caps the encoded document key.
const maxFavoriteIDLength = 512

// Store is a stateless gateway to the per-user favorites collection.
type Store struct {
	client *store.Client
}

func NewStore(client *store.Client) *Store {
	return &Store{client: client}
}

// BuildFavoriteID derives the deterministic document key for an item:
// the link when present, otherwise the title, lower-cased, percent-encoded
// and truncated. Save, Remove and List must all address the same key for
// the same logical item. Two long titles sharing their first 512 encoded
// characters collide; that limitation is accepted.
func BuildFavoriteID(item news.NewsItem) string {
	base := item.Link
	if base == "" {
		base = item.Title
	}
	id := url.QueryEscape(strings.ToLower(base))
	if len(id) > maxFavoriteIDLength {
		id = id[:maxFavoriteIDLength]
	}
	return id
}

// favoriteKey is the hash holding one favorite document.
func favoriteKey(uid, favID string) string {
	return fmt.Sprintf("users:%s:favorites:%s", uid, favID)
}

// indexKey is the sorted set ordering a user's favorites by creation time.
func indexKey(uid string) string {
	return fmt.Sprintf("users:%s:favorites", uid)
}

// Save upserts the item under the user's favorites collection. All fields
// are written, so a re-save refreshes the creation timestamp; fields absent
// from the item are stored as their empty defaults. Write failures
// propagate to the caller, there is no local retry.
func (s *Store) Save(ctx context.Context, uid, userEmail string, item news.NewsItem) error {
	favID := BuildFavoriteID(item)

	createdAt, err := s.client.ServerTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}

	publishedAt := item.PublishedAt
	if publishedAt == "" {
		publishedAt = time.Now().Format(time.RFC3339)
	}
	topic := item.Topic
	if topic == "" {
		topic = "Outros"
	}

	rdb := s.client.Redis()
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, favoriteKey(uid, favID), map[string]interface{}{
		"titulo":      item.Title,
		"descricao":   item.Description,
		"link":        item.Link,
		"urlDaImagem": item.ImageURL,
		"publicadoEm": publishedAt,
		"tema":        topic,
		"userEmail":   userEmail,
		"createdAt":   createdAt.Format(time.RFC3339Nano),
	})
	pipe.ZAdd(ctx, indexKey(uid), redis.Z{
		Score:  float64(createdAt.UnixMicro()),
		Member: favID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save favorite %s: %w", favID, err)
	}
	return nil
}

// Remove deletes the item's document and its index entry. Removing a
// favorite that does not exist is not an error.
func (s *Store) Remove(ctx context.Context, uid string, item news.NewsItem) error {
	favID := BuildFavoriteID(item)

	rdb := s.client.Redis()
	pipe := rdb.TxPipeline()
	pipe.Del(ctx, favoriteKey(uid, favID))
	pipe.ZRem(ctx, indexKey(uid), favID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove favorite %s: %w", favID, err)
	}
	return nil
}

// List returns the user's favorites, newest-favorited first, mapped back
// into the NewsItem shape. Storage-only fields (userEmail, createdAt) are
// dropped. A document missing its publication time falls back to the
// legacy "publishedAt" field name and then to the current time, so listing
// can invent a timestamp for very old records.
func (s *Store) List(ctx context.Context, uid string) ([]news.NewsItem, error) {
	rdb := s.client.Redis()

	favIDs, err := rdb.ZRevRange(ctx, indexKey(uid), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	items := make([]news.NewsItem, 0, len(favIDs))
	for _, favID := range favIDs {
		doc, err := rdb.HGetAll(ctx, favoriteKey(uid, favID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read favorite %s: %w", favID, err)
		}
		if len(doc) == 0 {
			// Index entry without a document; skip rather than fail the listing.
			continue
		}
		items = append(items, mapDocument(doc))
	}

	return items, nil
}

func mapDocument(doc map[string]string) news.NewsItem {
	publishedAt := doc["publicadoEm"]
	if publishedAt == "" {
		publishedAt = doc["publishedAt"]
	}
	if publishedAt == "" {
		publishedAt = time.Now().Format(time.RFC3339)
	}

	topic := doc["tema"]
	if topic == "" {
		topic = "Outros"
	}

	return news.NewsItem{
		Title:       doc["titulo"],
		Description: doc["descricao"],
		Link:        doc["link"],
		ImageURL:    doc["urlDaImagem"],
		PublishedAt: publishedAt,
		Topic:       topic,
	}
}
