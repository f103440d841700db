package feed

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Store is the durable, append-only, deduplicated feed document.
//
// The read-modify-write performed by Append is a single logical
// transaction but takes no cross-process lock; deployment guarantees a
// single scheduled writer at a time.
type Store struct {
	path      string
	metadata  Metadata
	generator *Generator
}

func NewStore(path string, metadata Metadata) *Store {
	return &Store{
		path:      path,
		metadata:  metadata,
		generator: NewGenerator(),
	}
}

// EnsureExists creates the parent directory and a metadata-only document
// when none is present. A no-op otherwise, regardless of the existing
// content's validity.
func (s *Store) EnsureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat feed document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return s.write(nil)
}

// ReadIdentifiers collects the identifier of every item in the document:
// the guid, falling back to link, then to a legacy bare title. An
// unparsable document is renamed to a timestamped backup, replaced with
// a fresh empty one, and reported as having no items.
func (s *Store) ReadIdentifiers() (map[string]struct{}, error) {
	identifiers := make(map[string]struct{})

	parsed, err := s.parse()
	if err != nil {
		if os.IsNotExist(err) {
			return identifiers, nil
		}
		if rerr := s.recoverCorrupt(); rerr != nil {
			return nil, rerr
		}
		return identifiers, nil
	}

	for _, item := range parsed.Items {
		id := strings.TrimSpace(cmp.Or(item.GUID, item.Link, item.Title))
		if id != "" {
			identifiers[id] = struct{}{}
		}
	}
	return identifiers, nil
}

// Append inserts a new item as the first item of the document. Returns
// false without mutation when an item with the same link already exists.
func (s *Store) Append(title, link string, publishedAt time.Time) (bool, error) {
	if err := s.EnsureExists(); err != nil {
		return false, err
	}

	identifiers, err := s.ReadIdentifiers()
	if err != nil {
		return false, err
	}
	if _, exists := identifiers[link]; exists {
		return false, nil
	}

	existing, err := s.loadItems()
	if err != nil {
		return false, err
	}

	item := Item{
		Title:   title,
		Link:    link,
		GUID:    link,
		PubDate: publishedAt.Format(time.RFC1123),
	}

	if err := s.write(append([]Item{item}, existing...)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) parse() (*gofeed.Feed, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return gofeed.NewParser().Parse(f)
}

func (s *Store) loadItems() ([]Item, error) {
	parsed, err := s.parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed document: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, Item{
			Title:   item.Title,
			Link:    item.Link,
			GUID:    item.GUID,
			PubDate: item.Published,
		})
	}
	return items, nil
}

// recoverCorrupt preserves the unreadable document as a timestamped
// backup and recreates a fresh empty one. Recovery is silent: the
// caller never sees corruption as an error.
func (s *Store) recoverCorrupt() error {
	backup := fmt.Sprintf("%s.bak-%d", s.path, time.Now().Unix())
	if err := os.Rename(s.path, backup); err != nil {
		return fmt.Errorf("failed to back up corrupt feed document: %w", err)
	}
	slog.Warn("Feed document unreadable, recreating", "path", s.path, "backup", backup)
	return s.EnsureExists()
}

func (s *Store) write(items []Item) error {
	content := s.generator.Run(s.metadata, items)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".feed-*.xml")
	if err != nil {
		return fmt.Errorf("failed to create temporary document: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write feed document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush feed document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close feed document: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace feed document: %w", err)
	}
	return nil
}
