package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/internal/repository"
	"jobboard/model"
)

const viewerKey = "viewer"

// JWT parses an optional Bearer token and stores the uid in Locals.
// Requests without a token pass through anonymous; reads stay open.
func JWT(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimSpace(auth[7:])
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(
			tokenStr,
			claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrUnauthorized
				}
				return secret, nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		uid, _ := claims["sub"].(string)
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing sub")
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}

// LoadViewer resolves the authenticated uid to the stored user and
// keeps it in Locals for the handlers. Role always comes from the
// stored document, not from token claims.
func LoadViewer(users repository.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.Next()
		}

		oid, err := bson.ObjectIDFromHex(uid)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token subject")
		}

		viewer, err := users.FindByID(c.Context(), oid)
		if err != nil {
			// Token for a deleted account: treat as anonymous.
			return c.Next()
		}

		c.Locals(viewerKey, viewer)
		return c.Next()
	}
}

// RequireAuth rejects requests that did not resolve to a viewer.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(viewerKey).(*model.User); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Next()
	}
}

// ViewerFromLocals returns the authenticated user, nil for anonymous.
func ViewerFromLocals(c *fiber.Ctx) *model.User {
	viewer, _ := c.Locals(viewerKey).(*model.User)
	return viewer
}
