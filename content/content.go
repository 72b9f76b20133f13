// Package content embeds the default Runeblade card set, bestiary and acts.
package content

import "embed"

// FS holds the default .lua content files, loadable with loader.LoadFS.
//
//go:embed *.lua
var FS embed.FS
