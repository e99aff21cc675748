// Package web holds the static frontend served at the site root.
package web

import "embed"

const IndexFile = "billing_tracker.html"

//go:embed billing_tracker.html
var FS embed.FS
