package domain

import (
	"net/url"
	"runtime"
	"strconv"
	"strings"
)

// Platform identifiers understood by the catalog service.
const (
	PlatformMacOS = "macosx"
	PlatformLinux = "linux"
)

// DefaultPlatform returns the client type reported to the catalog service.
func DefaultPlatform() string {
	if runtime.GOOS == "darwin" {
		return PlatformMacOS
	}
	return PlatformLinux
}

// Endpoints builds the catalog service URLs.
type Endpoints struct {
	server   string
	platform string
}

// NewEndpoints returns an Endpoints rooted at server. A trailing slash on server is ignored.
func NewEndpoints(server, platform string) Endpoints {
	if platform == "" {
		platform = DefaultPlatform()
	}
	return Endpoints{server: strings.TrimRight(server, "/"), platform: platform}
}

// Configured reports whether a server URL is set.
func (e Endpoints) Configured() bool {
	return e.server != ""
}

// CatalogURL returns the manifest URL for locale.
func (e Endpoints) CatalogURL(locale string) string {
	return e.server + "/a/templates?language_type=" + url.QueryEscape(locale) +
		"&client_type=" + url.QueryEscape(e.platform)
}

// PurchaseRecordURL returns the purchase record URL for the user token.
func (e Endpoints) PurchaseRecordURL(token string) string {
	return e.server + "/a/templates/record?token=" + url.QueryEscape(token)
}

// TemplateURL returns the package download URL for a template id.
func (e Endpoints) TemplateURL(id int) string {
	return e.server + "/a/templates/download/" + strconv.Itoa(id)
}
