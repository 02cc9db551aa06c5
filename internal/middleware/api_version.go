package middleware

import (
	"fmt"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var versionPattern = regexp.MustCompile(`^/api/(v\d+)(/|$)`)

// APIVersion rejects requests for any API version other than the one
// currently supported and tags the request with the resolved version.
func APIVersion(current string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := ""
		if m := versionPattern.FindStringSubmatch(c.Path()); m != nil {
			requested = m[1]
		}

		if requested != "" && requested != current {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success":           false,
				"error":             fmt.Sprintf("API version %s is not supported. Current version is %s", requested, current),
				"supportedVersions": []string{current},
			})
		}

		resolved := requested
		if resolved == "" {
			resolved = current
		}
		c.Locals("apiVersion", resolved)
		return c.Next()
	}
}
