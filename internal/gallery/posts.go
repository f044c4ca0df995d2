// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/coomono/internal/media"
	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/upstream"
)

// PageSize is the number of posts the upstream API returns per page.
const PageSize = 50

// PostsQuery selects a page of a creator's posts.
type PostsQuery struct {
	Offset int
	Legacy bool
	// Media filters the derived files: "all", "images" or "videos".
	Media         string
	SortAscending bool
}

// PostsPage is one page of posts with the media files derived from them.
type PostsPage struct {
	Posts      []models.Post
	Files      []models.MediaFile
	Offset     int
	NextOffset int
	HasMore    bool
	// Count is the creator's total post count when the instance reports it.
	Count    int
	Instance models.Instance
}

// Posts returns a page of a creator's posts. The first page of the regular
// listing is cached in the directory for the current instance.
func (s *Service) Posts(ctx context.Context, service, id string, q PostsQuery) (PostsPage, error) {
	inst := s.registry.Current()
	page := PostsPage{Offset: q.Offset, Instance: inst}
	if q.Offset < 0 {
		page.Offset = 0
	}

	var (
		posts []models.Post
		err   error
	)
	switch {
	case q.Legacy:
		var legacy *models.LegacyPostsResponse
		legacy, err = s.client.FetchLegacyPosts(ctx, inst.URL, service, id, page.Offset)
		if err == nil {
			posts = legacy.Results
			page.Count = legacy.Props.Count
		}
	case page.Offset == 0:
		s.warmDirectory(ctx)
		if cached, ok := s.dir.CreatorPosts(service, id); ok && s.dir.CurrentDomain() == inst.URL {
			posts = cached
			break
		}
		posts, err = s.client.FetchPosts(ctx, inst.URL, service, id, 0)
		if err == nil && s.dir.CurrentDomain() == inst.URL {
			s.dir.SetCreatorPosts(service, id, posts)
		}
	default:
		posts, err = s.client.FetchPosts(ctx, inst.URL, service, id, page.Offset)
	}
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return page, fmt.Errorf("%w: %s/%s", ErrCreatorNotFound, service, id)
		}
		return page, fmt.Errorf("fetch posts %s/%s: %w", service, id, err)
	}

	b := s.URLs()
	now := s.now()
	page.Posts = make([]models.Post, 0, len(posts))
	page.Files = []models.MediaFile{}
	for i := range posts {
		p := posts[i]
		p.Content = s.sanitize(p.Content)
		page.Posts = append(page.Posts, p)
		page.Files = append(page.Files, media.FilesForPost(&p, b, now)...)
	}

	page.Files = media.FilterFiles(page.Files, q.Media)
	media.SortFilesByAdded(page.Files, q.SortAscending)

	page.HasMore = len(posts) >= PageSize
	if page.Count > 0 {
		page.HasMore = page.Offset+len(posts) < page.Count
	}
	if page.HasMore {
		page.NextOffset = page.Offset + PageSize
	}
	return page, nil
}

// PostDetail is a single post with its media files and navigation.
type PostDetail struct {
	Post     models.Post
	Files    []models.MediaFile
	Next     string
	Prev     string
	Instance models.Instance
}

// Post fetches one post. Its HTML content is sanitized and its files carry
// the server each one is hosted on.
func (s *Service) Post(ctx context.Context, service, id, postID string) (PostDetail, error) {
	inst := s.registry.Current()
	detail := PostDetail{Instance: inst}

	resp, err := s.client.FetchPost(ctx, inst.URL, service, id, postID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return detail, fmt.Errorf("%w: %s/%s/%s", ErrPostNotFound, service, id, postID)
		}
		return detail, fmt.Errorf("fetch post %s/%s/%s: %w", service, id, postID, err)
	}

	detail.Post = resp.Post
	detail.Post.Content = s.sanitize(resp.Post.Content)
	detail.Files = media.FilesForPostResponse(resp, s.URLs(), s.now())
	if resp.Post.Next != nil {
		detail.Next = *resp.Post.Next
	}
	if resp.Post.Prev != nil {
		detail.Prev = *resp.Post.Prev
	}
	return detail, nil
}
