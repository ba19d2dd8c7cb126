package httpapi

import "strings"

// normalizeBasePath returns the mount path in canonical form: a
// leading slash, no trailing slash, and "" for the root.
func normalizeBasePath(value string) string {
	path := strings.Trim(strings.TrimSpace(value), "/")
	if path == "" {
		return ""
	}
	return "/" + path
}

// buildBaseHref joins an external base URL and a mount path into the
// href advertised to clients, always slash-terminated when non-empty.
func buildBaseHref(baseURL, basePath string) string {
	href := strings.TrimRight(strings.TrimSpace(baseURL), "/") + normalizeBasePath(basePath)
	if href == "" {
		return ""
	}
	return strings.TrimRight(href, "/") + "/"
}
