// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package models

// Link is a social media link attached to a creator.
type Link struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Creator is one row of the creators.txt directory.
// Identity is the compound key (Service, ID).
type Creator struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Service   string `json:"service"`
	Indexed   int64  `json:"indexed"`
	Updated   int64  `json:"updated"` // unix seconds
	Favorited int64  `json:"favorited"`
	Links     []Link `json:"links,omitempty"`
}

// CreatorProfile is the extended profile returned by the profile endpoint.
type CreatorProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Service     string `json:"service"`
	Favorited   int64  `json:"favorited"`
	Updated     int64  `json:"updated"`
	Indexed     int64  `json:"indexed,omitempty"`
	Links       []Link `json:"links,omitempty"`
	Description string `json:"description,omitempty"`
}

// Supported services. The list is informational; unknown services are
// passed through to the upstream unchanged.
const (
	ServiceOnlyFans      = "onlyfans"
	ServiceFansly        = "fansly"
	ServicePatreon       = "patreon"
	ServiceFanbox        = "fanbox"
	ServiceDiscord       = "discord"
	ServiceFantia        = "fantia"
	ServiceGumroad       = "gumroad"
	ServiceSubscribeStar = "subscribestar"
)
