// Package ui provides the embedded public listing page.
package ui

import (
	_ "embed"
)

// IndexHTML is the video preview gallery. It fetches the listing from
// /api/videos and renders one card per preview with a delivery link.
//
//go:embed index.html
var IndexHTML []byte
