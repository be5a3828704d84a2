package main

import (
	"os"
	"strings"
)

// cspPolicy returns the Content Security Policy for every response.
// The page has no scripts and loads its stylesheet from /static/.
func cspPolicy() string {
	directives := []string{
		"default-src 'self'",
		"script-src 'none'",
		"style-src 'self'",
		"img-src 'self' data:",
		"connect-src 'self'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}

	// Upgrade insecure requests if explicitly in production
	if os.Getenv("PRODUCTION") == "true" {
		directives = append(directives, "upgrade-insecure-requests")
	}

	return strings.Join(directives, "; ")
}
