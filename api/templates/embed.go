// Package templates carries the embedded HTML pages served by the app.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
