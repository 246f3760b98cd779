// Package web embeds the static signup UI.
package web

import "embed"

//go:embed static
var Static embed.FS
