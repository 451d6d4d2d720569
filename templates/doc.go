// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package templates bundles the starter forms. SeedForms are stored on a
// fresh installation; All lists the templates offered when authoring a new
// form. Every form declares question roles, so participant names, interest
// and schedule statistics work without guessing.
package templates
