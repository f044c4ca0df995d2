// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package validation

// AddInstanceRequest is the body of POST /api/v1/instances.
type AddInstanceRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	URL      string `json:"url" validate:"required,max=253,instance_domain"`
	Activate bool   `json:"activate"`
}

// ValidateInstanceRequest is the body of POST /api/v1/instances/validate.
type ValidateInstanceRequest struct {
	Name string `json:"name" validate:"omitempty,max=100"`
	URL  string `json:"url" validate:"required,max=253,instance_domain"`
}

// SwitchInstanceRequest is the body of PUT /api/v1/instances/current.
type SwitchInstanceRequest struct {
	URL string `json:"url" validate:"required,max=253,instance_domain"`
}

// CreatorListQuery holds the query of GET /api/v1/creators.
type CreatorListQuery struct {
	Search  string `query:"q" validate:"max=200"`
	Service string `query:"service" validate:"omitempty,max=64"`
	Sort    string `query:"sort" validate:"omitempty,oneof=id name service indexed updated favorited"`
	Order   string `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit   int    `query:"limit" validate:"min=1,max=10000"`
	Offset  int    `query:"offset" validate:"min=0"`
}

// PostsQuery holds the query of GET /api/v1/creators/{service}/{id}/posts.
type PostsQuery struct {
	Offset int    `query:"o" validate:"min=0,max=1000000"`
	Media  string `query:"media" validate:"omitempty,oneof=all images videos"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	Legacy bool   `query:"legacy"`
}

// MediaURLQuery holds the query of GET /api/v1/media/url.
type MediaURLQuery struct {
	Path   string `query:"path" validate:"required,max=2048"`
	Server string `query:"server" validate:"omitempty,url"`
	Kind   string `query:"kind" validate:"omitempty,oneof=file attachment thumbnail"`
}
