package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxSlugLen      = 64  // tools.tool_slug VARCHAR(64)
	MaxVoterIDLen   = 64  // votes.voter_id VARCHAR(64), hex SHA256
	MaxUserAgentLen = 128 // votes.user_agent VARCHAR(128)
)

var (
	// slugRe matches URL-safe tool and category slugs: lowercase
	// alphanumerics separated by single dashes.
	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// voterIDRe matches voter IDs: hex SHA256 hashes.
	voterIDRe = regexp.MustCompile(`^[0-9a-f]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateSlug checks that a tool/category slug is well-formed and within
// DB limits. Returns the normalized slug, or an error message.
func ValidateSlug(slug string) (string, string) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return "", "slug is required"
	}
	if len(slug) > MaxSlugLen {
		return "", "slug must be at most 64 characters"
	}
	if !slugRe.MatchString(slug) {
		return "", "slug must be lowercase alphanumerics and dashes"
	}
	return slug, ""
}

// ValidateVoterID checks that a voter ID is a valid hex hash.
func ValidateVoterID(id string) (string, string) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", "voterId is required"
	}
	if len(id) > MaxVoterIDLen {
		return "", "voterId must be at most 64 characters"
	}
	if !voterIDRe.MatchString(id) {
		return "", "voterId must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateUserAgent trims and truncates user agent to DB limits.
func ValidateUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if len(ua) > MaxUserAgentLen {
		ua = ua[:MaxUserAgentLen]
	}
	return ua
}
