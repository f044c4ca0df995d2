// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/coomono/internal/directory"
	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/upstream"
)

// ListQuery selects a page of the creator directory.
type ListQuery struct {
	Search    string
	Service   string
	Sort      directory.SortField
	Ascending bool
	Limit     int
	Offset    int
}

// ListResult is one page of creators. Total counts matches before paging.
type ListResult struct {
	Creators []models.Creator
	Total    int
	Instance models.Instance
}

// ListCreators returns a filtered, sorted page of the current instance's
// directory. When the directory cannot be loaded the result is empty and the
// load error is returned alongside it.
func (s *Service) ListCreators(ctx context.Context, q ListQuery) (ListResult, error) {
	res := ListResult{Creators: []models.Creator{}, Instance: s.registry.Current()}

	if err := s.EnsureCreatorsLoaded(ctx); err != nil {
		return res, err
	}

	var matched []models.Creator
	if q.Search != "" {
		matched = s.dir.SearchCreators(q.Search)
	} else {
		matched = s.dir.Creators()
	}
	if q.Service != "" {
		filtered := matched[:0]
		for _, c := range matched {
			if c.Service == q.Service {
				filtered = append(filtered, c)
			}
		}
		matched = filtered
	}

	sortField := q.Sort
	if sortField == "" {
		sortField = directory.SortByUpdated
	}
	s.dir.Sort(matched, sortField, q.Ascending)

	res.Total = len(matched)
	start := clamp(q.Offset, 0, len(matched))
	end := len(matched)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}
	res.Creators = append(res.Creators, matched[start:end]...)
	return res, nil
}

// CreatorDetail is a creator with its profile and derived image URLs.
type CreatorDetail struct {
	Creator           models.Creator
	Profile           *models.CreatorProfile
	ProfilePictureURL string
	BannerURL         string
	Favorited         int64
	Instance          models.Instance
}

// Creator looks a creator up in the directory and fetches its profile,
// using the directory's profile cache first. ErrCreatorNotFound is returned
// only when both the directory and the profile endpoint miss.
func (s *Service) Creator(ctx context.Context, service, id string) (CreatorDetail, error) {
	inst := s.registry.Current()
	detail := CreatorDetail{Instance: inst}

	s.warmDirectory(ctx)

	creator, inDirectory := s.dir.FindCreator(service, id)

	profile, err := s.profile(ctx, inst.URL, service, id)
	switch {
	case err == nil:
		detail.Profile = profile
	case errors.Is(err, upstream.ErrNotFound):
		if !inDirectory {
			return detail, fmt.Errorf("%w: %s/%s", ErrCreatorNotFound, service, id)
		}
	default:
		if !inDirectory {
			return detail, fmt.Errorf("fetch profile %s/%s: %w", service, id, err)
		}
		logging.Ctx(ctx).Warn().Err(err).Str("service", service).Str("id", id).Msg("Creator profile unavailable")
	}

	if inDirectory {
		detail.Creator = creator
		detail.Favorited = creator.Favorited
	} else {
		detail.Creator = models.Creator{
			ID:        profile.ID,
			Name:      profile.Name,
			Service:   profile.Service,
			Indexed:   profile.Indexed,
			Updated:   profile.Updated,
			Favorited: profile.Favorited,
			Links:     profile.Links,
		}
		detail.Favorited = profile.Favorited
	}

	b := s.URLs()
	detail.ProfilePictureURL = b.ProfilePictureURL(service, id)
	detail.BannerURL = b.BannerURL(service, id)
	return detail, nil
}

func (s *Service) profile(ctx context.Context, domain, service, id string) (*models.CreatorProfile, error) {
	if p, ok := s.dir.CreatorProfile(service, id); ok && s.dir.CurrentDomain() == domain {
		return &p, nil
	}
	p, err := s.client.FetchProfile(ctx, domain, service, id)
	if err != nil {
		return nil, err
	}
	if s.dir.CurrentDomain() == domain {
		s.dir.SetCreatorProfile(service, id, *p)
	}
	return p, nil
}

// warmDirectory loads the directory for lookups that can proceed without it.
func (s *Service) warmDirectory(ctx context.Context) {
	if err := s.EnsureCreatorsLoaded(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("instance", s.registry.Current().URL).Msg("Creator directory unavailable")
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
