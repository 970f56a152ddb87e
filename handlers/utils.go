package handlers

import (
	"errors"
	"slices"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jalexanderII/session-todos/models"
	"github.com/sirupsen/logrus"
)

const (
	listNotFoundMessage = "The specified list was not found."
	todoNotFoundMessage = "The specified todo was not found."
)

type Handler struct {
	Store *session.Store
	L     *logrus.Logger
}

func NewHandler(store *session.Store, l *logrus.Logger) *Handler {
	return &Handler{
		Store: store,
		L:     l,
	}
}

func FiberJsonResponse(c *fiber.Ctx, httpStatus int, status, message string, data any) error {
	return c.Status(httpStatus).JSON(fiber.Map{"status": status, "message": message, "data": data})
}

// render consumes the flash messages of s and renders view inside the layout.
func (h *Handler) render(c *fiber.Ctx, s *State, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	flash := s.PopFlash()
	data["Error"] = flash.Error
	data["Success"] = flash.Success
	return c.Render(view, data, "layout")
}

// findList resolves the :id path parameter against the session's lists.
func findList(c *fiber.Ctx, s *State) (*models.List, bool) {
	id, ok := models.ParseID(c.Params("id"))
	if !ok {
		return nil, false
	}
	return s.Lists.Get(id)
}

func (h *Handler) listNotFound(c *fiber.Ctx, s *State) error {
	h.L.WithFields(logrus.Fields{"list_id": c.Params("id"), "path": c.Path()}).Debug("list not found")
	if c.XHR() {
		return c.SendStatus(fiber.StatusNotFound)
	}
	s.SetError(listNotFoundMessage)
	return c.Redirect("/lists")
}

func listPath(list *models.List) string {
	return "/lists/" + strconv.Itoa(list.ID)
}

func sortedLists(lists *models.Lists) []*models.List {
	out := make([]*models.List, 0, lists.Len())
	for _, list := range lists.Sorted() {
		out = append(out, list)
	}
	return out
}

func sortedTodos(list *models.List) []*models.Todo {
	return slices.Collect(list.SortedTodos())
}

// flashMessage returns the user facing text of a validation error.
func flashMessage(err error) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
