package static

import "embed"

// Files holds the stylesheet and script served under /static/
//
//go:embed *.css *.js
var Files embed.FS
