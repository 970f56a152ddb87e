package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// @Summary Get the session's lists.
// @Description fetch every list of the current session, incomplete lists first.
// @Tags lists
// @Produce json
// @Success 200 {object} []models.List
// @Router /api/lists [get]
func GetListsJSON(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		return FiberJsonResponse(c, fiber.StatusOK, "success", "session lists", sortedLists(s.Lists))
	})
}

// @Summary Get a single list.
// @Description fetch a single list of the current session by id.
// @Tags lists
// @Param id path int true "List ID"
// @Produce json
// @Success 200 {object} models.List
// @Router /api/lists/{id} [get]
func GetListJSON(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "list not found", nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "list", list)
	})
}
