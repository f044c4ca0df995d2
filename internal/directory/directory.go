// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

// Package directory holds the materialized creator list for the current
// instance plus bounded per-creator profile and posts lookups.
//
// Nothing in this package fails: absence is reported as (zero, false) or an
// empty slice. All methods are safe for concurrent use and never hand out
// slices that alias internal state.
package directory

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tomtom215/coomono/internal/cache"
	"github.com/tomtom215/coomono/internal/models"
)

// Key identifies a creator across the secondary lookups.
type Key struct {
	Service string
	ID      string
}

// SortField is a creator attribute accepted by SortedCreators.
type SortField string

const (
	SortByID        SortField = "id"
	SortByName      SortField = "name"
	SortByService   SortField = "service"
	SortByIndexed   SortField = "indexed"
	SortByUpdated   SortField = "updated"
	SortByFavorited SortField = "favorited"
)

// ParseSortField maps a query value onto a SortField.
func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(strings.ToLower(s)); f {
	case SortByID, SortByName, SortByService, SortByIndexed, SortByUpdated, SortByFavorited:
		return f, true
	default:
		return "", false
	}
}

// Bounds on the per-creator lookups. Evicted entries are refetched.
const (
	ProfileCapacity = 2048
	PostsCapacity   = 512
)

// Directory is the in-memory creator store for one instance at a time.
type Directory struct {
	lang language.Tag

	mu       sync.RWMutex
	creators []models.Creator
	domain   string

	profiles *cache.LRU[Key, models.CreatorProfile]
	posts    *cache.LRU[Key, []models.Post]
}

// LookupStats reports the per-creator lookup caches.
type LookupStats struct {
	Profiles cache.Stats `json:"profiles"`
	Posts    cache.Stats `json:"posts"`
}

// New creates an empty directory collating names for English.
func New() *Directory {
	return NewWithLanguage(language.English)
}

// NewWithLanguage creates an empty directory collating names for tag.
func NewWithLanguage(tag language.Tag) *Directory {
	return &Directory{
		lang:     tag,
		creators: []models.Creator{},
		profiles: cache.NewLRU[Key, models.CreatorProfile](ProfileCapacity, 0),
		posts:    cache.NewLRU[Key, []models.Post](PostsCapacity, 0),
	}
}

// SetCreators replaces the creator list wholesale.
func (d *Directory) SetCreators(creators []models.Creator) {
	cp := copyCreators(creators)
	d.mu.Lock()
	d.creators = cp
	d.mu.Unlock()
}

// Creators returns the creator list.
func (d *Directory) Creators() []models.Creator {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyCreators(d.creators)
}

// Len returns the number of creators held.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.creators)
}

// SetCurrentDomain tags the instance the held list belongs to.
func (d *Directory) SetCurrentDomain(domain string) {
	d.mu.Lock()
	d.domain = domain
	d.mu.Unlock()
}

// CurrentDomain returns the instance tag of the held list.
func (d *Directory) CurrentDomain() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.domain
}

// IsStale reports whether the held list belongs to a different instance
// than domain and must be refetched before use.
func (d *Directory) IsStale(domain string) bool {
	return d.CurrentDomain() != domain
}

// Replace swaps list and domain tag in one step so readers never observe
// one instance's creators tagged with another's domain.
func (d *Directory) Replace(domain string, creators []models.Creator) {
	cp := copyCreators(creators)
	d.mu.Lock()
	d.creators = cp
	d.domain = domain
	d.mu.Unlock()
}

// FindCreator returns the first creator matching (service, id).
func (d *Directory) FindCreator(service, id string) (models.Creator, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.creators {
		if d.creators[i].Service == service && d.creators[i].ID == id {
			return d.creators[i], true
		}
	}
	return models.Creator{}, false
}

// SetCreatorProfile stores a profile.
func (d *Directory) SetCreatorProfile(service, id string, profile models.CreatorProfile) {
	d.profiles.Add(Key{Service: service, ID: id}, profile)
}

// CreatorProfile returns a stored profile.
func (d *Directory) CreatorProfile(service, id string) (models.CreatorProfile, bool) {
	return d.profiles.Get(Key{Service: service, ID: id})
}

// SetCreatorPosts stores a creator's posts.
func (d *Directory) SetCreatorPosts(service, id string, posts []models.Post) {
	cp := make([]models.Post, len(posts))
	copy(cp, posts)
	d.posts.Add(Key{Service: service, ID: id}, cp)
}

// CreatorPosts returns stored posts for a creator.
func (d *Directory) CreatorPosts(service, id string) ([]models.Post, bool) {
	posts, ok := d.posts.Get(Key{Service: service, ID: id})
	if !ok {
		return nil, false
	}
	cp := make([]models.Post, len(posts))
	copy(cp, posts)
	return cp, true
}

// ClearCreatorData drops all stored profiles and posts.
func (d *Directory) ClearCreatorData() {
	d.profiles.Clear()
	d.posts.Clear()
}

// LookupStats returns hit and eviction counts for the profile and posts
// lookups.
func (d *Directory) LookupStats() LookupStats {
	return LookupStats{Profiles: d.profiles.Stats(), Posts: d.posts.Stats()}
}

// SearchCreators returns creators whose name, id or service contains term,
// ignoring case. An empty term returns the full list.
func (d *Directory) SearchCreators(term string) []models.Creator {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if term == "" {
		return copyCreators(d.creators)
	}
	term = strings.ToLower(term)

	out := []models.Creator{}
	for i := range d.creators {
		c := &d.creators[i]
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.ID), term) ||
			strings.Contains(strings.ToLower(c.Service), term) {
			out = append(out, *c)
		}
	}
	return out
}

// CreatorsByService returns creators whose service equals service exactly.
func (d *Directory) CreatorsByService(service string) []models.Creator {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := []models.Creator{}
	for i := range d.creators {
		if d.creators[i].Service == service {
			out = append(out, d.creators[i])
		}
	}
	return out
}

// SortedCreators returns a sorted copy of the list. String fields compare
// with locale-aware collation, numeric fields numerically. The sort is
// stable; an unknown field returns the list in stored order.
func (d *Directory) SortedCreators(field SortField, ascending bool) []models.Creator {
	out := d.Creators()
	SortCreators(out, field, ascending, d.lang)
	return out
}

// Sort stable-sorts an already filtered list in place using the
// directory's collation language.
func (d *Directory) Sort(creators []models.Creator, field SortField, ascending bool) {
	SortCreators(creators, field, ascending, d.lang)
}

// SortCreators stable-sorts creators in place.
func SortCreators(creators []models.Creator, field SortField, ascending bool, tag language.Tag) {
	var compare func(a, b *models.Creator) int

	switch field {
	case SortByID, SortByName, SortByService:
		// Collators keep scratch buffers and are not safe to share.
		col := collate.New(tag)
		str := stringField(field)
		compare = func(a, b *models.Creator) int { return col.CompareString(str(a), str(b)) }
	case SortByIndexed, SortByUpdated, SortByFavorited:
		num := numericField(field)
		compare = func(a, b *models.Creator) int {
			switch x, y := num(a), num(b); {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	default:
		return
	}

	sort.SliceStable(creators, func(i, j int) bool {
		c := compare(&creators[i], &creators[j])
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

func stringField(field SortField) func(*models.Creator) string {
	switch field {
	case SortByID:
		return func(c *models.Creator) string { return c.ID }
	case SortByService:
		return func(c *models.Creator) string { return c.Service }
	default:
		return func(c *models.Creator) string { return c.Name }
	}
}

func numericField(field SortField) func(*models.Creator) int64 {
	switch field {
	case SortByIndexed:
		return func(c *models.Creator) int64 { return c.Indexed }
	case SortByFavorited:
		return func(c *models.Creator) int64 { return c.Favorited }
	default:
		return func(c *models.Creator) int64 { return c.Updated }
	}
}

func copyCreators(in []models.Creator) []models.Creator {
	out := make([]models.Creator, len(in))
	copy(out, in)
	return out
}
