package social

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow/:username", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		authorID, err := svc.UserIDByUsername(c.Context(), c.Params("username"))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := svc.Follow(c.Context(), userID, authorID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/follow/:username", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		authorID, err := svc.UserIDByUsername(c.Context(), c.Params("username"))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := svc.Unfollow(c.Context(), userID, authorID); err != nil && !errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		// a missing edge is treated as already unfollowed
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/following/:username", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		authorID, err := svc.UserIDByUsername(c.Context(), c.Params("username"))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		following, err := svc.IsFollowing(c.Context(), userID, authorID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"following": following})
	})
}
