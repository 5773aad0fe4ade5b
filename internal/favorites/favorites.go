// Package favorites persists starred image URLs per genre in a BoltDB
// database. The store is purely additive bookkeeping for the viewer; the
// session controller never reads from it.
package favorites

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	bolt "go.etcd.io/bbolt"

	"artframe/internal/config"
	"artframe/internal/provider"
)

const (
	dbFileName = "artframe_favorites.db"

	// FavoritesByGenreBucket maps a genre slug to a JSON list of URLs.
	FavoritesByGenreBucket = "FavoritesByGenre"
	// FavoriteRefsBucket maps a starred URL back to its genre slug.
	FavoriteRefsBucket = "FavoriteRefs"
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// DB manages the favorites database.
type DB struct {
	db     *bolt.DB
	logger LoggerFunc
}

// Favorite is one starred image.
type Favorite struct {
	URL   string
	Genre config.Genre
}

// GenreCount holds a genre and the number of favorites stored under it.
type GenreCount struct {
	Genre config.Genre
	Count int
}

// NewDB creates or opens the favorites database file. An empty dbDir
// places it under the user config directory.
func NewDB(dbDir string, logger LoggerFunc) (*DB, error) {
	if dbDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: Could not get user config dir: %v. Using current dir.", err)
			dbDir = "."
		} else {
			appConfigDir := filepath.Join(configDir, "artframe")
			if err := os.MkdirAll(appConfigDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create config directory %s: %w", appConfigDir, err)
			}
			dbDir = appConfigDir
		}
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	if logger != nil {
		logger(fmt.Sprintf("Using favorites database at: %s", dbPath))
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{FavoritesByGenreBucket, FavoriteRefsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db, logger: logger}, nil
}

func (f *DB) logMessage(format string, args ...interface{}) {
	if f.logger != nil {
		f.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// Close closes the database connection.
func (f *DB) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

func decodeList(data []byte) ([]string, error) {
	var list []string
	if data == nil {
		return []string{}, nil
	}
	err := json.Unmarshal(data, &list)
	return list, err
}

func addToList(list []string, item string) ([]string, bool) {
	for _, existing := range list {
		if existing == item {
			return list, false
		}
	}
	return append(list, item), true
}

func removeFromList(list []string, item string) []string {
	newList := list[:0]
	for _, existing := range list {
		if existing != item {
			newList = append(newList, existing)
		}
	}
	return newList
}

// updateGenreList adds or removes a URL in a genre's stored list. The key
// is deleted once its list drains empty. Returns whether anything changed.
func updateGenreList(tx *bolt.Tx, slug, url string, add bool) (bool, error) {
	bucket := tx.Bucket([]byte(FavoritesByGenreBucket))
	if bucket == nil {
		return false, fmt.Errorf("bucket %s not found", FavoritesByGenreBucket)
	}

	list, err := decodeList(bucket.Get([]byte(slug)))
	if err != nil {
		return false, fmt.Errorf("failed to decode favorites for genre %q: %w", slug, err)
	}

	var changed bool
	if add {
		list, changed = addToList(list, url)
	} else {
		before := len(list)
		list = removeFromList(list, url)
		changed = len(list) != before
	}
	if !changed {
		return false, nil
	}

	if len(list) == 0 {
		if err := bucket.Delete([]byte(slug)); err != nil {
			return true, fmt.Errorf("failed to delete empty genre %q: %w", slug, err)
		}
		return true, nil
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return true, fmt.Errorf("failed to encode favorites for genre %q: %w", slug, err)
	}
	if err := bucket.Put([]byte(slug), encoded); err != nil {
		return true, fmt.Errorf("failed to store favorites for genre %q: %w", slug, err)
	}
	return true, nil
}

// Add stars an image. Adding the same URL twice is a no-op.
func (f *DB) Add(ref provider.ImageRef) error {
	if ref.URL == "" {
		return fmt.Errorf("image URL cannot be empty")
	}
	slug := ref.Genre.Slug()
	return f.db.Update(func(tx *bolt.Tx) error {
		if _, err := updateGenreList(tx, slug, ref.URL, true); err != nil {
			return err
		}
		refs := tx.Bucket([]byte(FavoriteRefsBucket))
		if err := refs.Put([]byte(ref.URL), []byte(slug)); err != nil {
			return fmt.Errorf("failed to store ref %s: %w", ref.URL, err)
		}
		return nil
	})
}

// Remove unstars an image by URL. Unknown URLs are a no-op.
func (f *DB) Remove(url string) error {
	if url == "" {
		return fmt.Errorf("image URL cannot be empty")
	}
	return f.db.Update(func(tx *bolt.Tx) error {
		refs := tx.Bucket([]byte(FavoriteRefsBucket))
		slugBytes := refs.Get([]byte(url))
		if slugBytes == nil {
			return nil
		}
		if _, err := updateGenreList(tx, string(slugBytes), url, false); err != nil {
			return err
		}
		if err := refs.Delete([]byte(url)); err != nil {
			return fmt.Errorf("failed to delete ref %s: %w", url, err)
		}
		return nil
	})
}

// IsFavorite reports whether a URL has been starred.
func (f *DB) IsFavorite(url string) (bool, error) {
	var found bool
	err := f.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(FavoriteRefsBucket)).Get([]byte(url)) != nil
		return nil
	})
	return found, err
}

// ListByGenre retrieves the starred URLs for one genre, sorted.
func (f *DB) ListByGenre(g config.Genre) ([]string, error) {
	var urls []string
	err := f.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(FavoritesByGenreBucket))
		data := bucket.Get([]byte(g.Slug()))
		var err error
		urls, err = decodeList(data)
		if err != nil {
			return fmt.Errorf("failed to decode favorites for genre %s: %w", g, err)
		}
		return nil
	})
	sort.Strings(urls)
	return urls, err
}

// All retrieves every favorite, sorted by URL.
func (f *DB) All() ([]Favorite, error) {
	var all []Favorite
	err := f.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(FavoriteRefsBucket)).ForEach(func(k, v []byte) error {
			genre, err := config.ParseGenre(string(v))
			if err != nil {
				f.logMessage("Skipping favorite %s with unknown genre %q", string(k), string(v))
				return nil
			}
			all = append(all, Favorite{URL: string(k), Genre: genre})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].URL < all[j].URL })
	return all, nil
}

// Counts retrieves per-genre favorite totals, sorted by genre name.
func (f *DB) Counts() ([]GenreCount, error) {
	var counts []GenreCount
	err := f.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(FavoritesByGenreBucket))
		return bucket.ForEach(func(k, v []byte) error {
			genre, err := config.ParseGenre(string(k))
			if err != nil {
				f.logMessage("Skipping favorites under unknown genre %q", string(k))
				return nil
			}
			list, err := decodeList(v)
			if err != nil {
				f.logMessage("Error decoding favorites for genre %q, skipping: %v", string(k), err)
				return nil
			}
			counts = append(counts, GenreCount{Genre: genre, Count: len(list)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Genre.String() < counts[j].Genre.String()
	})
	return counts, nil
}
