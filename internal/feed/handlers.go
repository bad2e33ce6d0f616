package feed

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/d-trefilov/hw05-final/internal/timeline"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, cache *timeline.Cache, cacheTTL time.Duration, viewerMiddleware, authMiddleware fiber.Handler) {
	r.Get("/", viewerMiddleware, func(c *fiber.Ctx) error {
		page := PageNumber(c.Query("page"))
		viewerID, _ := c.Locals("user_id").(string)

		// only the anonymous first page is cache-eligible
		if viewerID == "" && page == 1 {
			ctx := c.Context()
			body, _, err := cache.GetOrCompute(ctx, timeline.IndexKey, cacheTTL, func() ([]byte, error) {
				result, err := svc.Compose(ctx, Global(), 1)
				if err != nil {
					return nil, err
				}
				return json.Marshal(result)
			})
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}

		result, err := svc.Compose(c.Context(), Global(), page)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})

	r.Get("/groups/:slug", func(c *fiber.Ctx) error {
		result, err := svc.Compose(c.Context(), ByGroup(c.Params("slug")), PageNumber(c.Query("page")))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "group not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})

	r.Get("/users/:username", viewerMiddleware, func(c *fiber.Ctx) error {
		username := c.Params("username")
		viewerID, _ := c.Locals("user_id").(string)

		result, err := svc.Compose(c.Context(), ByAuthor(username), PageNumber(c.Query("page")))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		following, err := svc.IsFollowingAuthor(c.Context(), viewerID, username)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"author":    username,
			"following": following,
			"posts":     result,
		})
	})

	r.Get("/following", authMiddleware, func(c *fiber.Ctx) error {
		viewerID, _ := c.Locals("user_id").(string)
		result, err := svc.Compose(c.Context(), Following(viewerID), PageNumber(c.Query("page")))
		if err != nil {
			if errors.Is(err, ErrViewerRequired) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})

	r.Post("/cache/clear", authMiddleware, func(c *fiber.Ctx) error {
		if err := cache.Invalidate(c.Context(), timeline.IndexKey); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
