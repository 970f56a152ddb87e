package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/session-todos/models"
	"github.com/sirupsen/logrus"
)

func HandleRoot(c *fiber.Ctx) error {
	return c.Redirect("/lists")
}

// GetLists renders every list of the session, incomplete lists first.
func GetLists(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		return h.render(c, s, "lists", fiber.Map{"Lists": sortedLists(s.Lists)})
	})
}

func NewListForm(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		return h.render(c, s, "new_list", fiber.Map{"ListName": ""})
	})
}

// CreateList adds a list named after the list_name form field. Invalid names
// re-render the form with the input kept.
func CreateList(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		name := strings.TrimSpace(c.FormValue("list_name"))

		list, err := s.Lists.CreateList(name)
		if err != nil {
			s.SetError(flashMessage(err))
			return h.render(c, s, "new_list", fiber.Map{"ListName": name})
		}

		h.L.WithFields(logrus.Fields{"session": s.ID(), "list_id": list.ID}).Info("list created")
		s.SetSuccess("The list has been created.")
		return c.Redirect("/lists")
	})
}

func GetList(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}
		return h.render(c, s, "list", fiber.Map{"List": list, "Todos": sortedTodos(list), "TodoName": ""})
	})
}

func EditListForm(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}
		return h.render(c, s, "edit_list", fiber.Map{"List": list, "ListName": list.Name})
	})
}

func UpdateList(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}

		name := strings.TrimSpace(c.FormValue("list_name"))
		if err := s.Lists.RenameList(list.ID, name); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return h.listNotFound(c, s)
			}
			s.SetError(flashMessage(err))
			return h.render(c, s, "edit_list", fiber.Map{"List": list, "ListName": name})
		}

		h.L.WithFields(logrus.Fields{"session": s.ID(), "list_id": list.ID}).Info("list renamed")
		s.SetSuccess("The list has been updated.")
		return c.Redirect(listPath(list))
	})
}

// DeleteList removes a list. Unknown ids are ignored. XHR callers get the
// path to navigate to as the response body instead of a redirect.
func DeleteList(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		if id, ok := models.ParseID(c.Params("id")); ok {
			s.Lists.DeleteList(id)
			h.L.WithFields(logrus.Fields{"session": s.ID(), "list_id": id}).Info("list deleted")
		}

		if c.XHR() {
			return c.SendString("/lists")
		}
		s.SetSuccess("The list has been deleted.")
		return c.Redirect("/lists")
	})
}
