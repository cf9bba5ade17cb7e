// Package root embeds the static assets shipped with the service, currently
// the email templates under assets/.
package root

import "embed"

// Assets is a virtual filesystem with every file embedded from the assets
// directory.
//
//go:embed all:assets
var Assets embed.FS
