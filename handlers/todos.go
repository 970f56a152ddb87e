package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/session-todos/models"
	"github.com/sirupsen/logrus"
)

func AddTodo(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}

		name := strings.TrimSpace(c.FormValue("todo"))
		todo, err := list.AddTodo(name)
		if err != nil {
			s.SetError(flashMessage(err))
			return h.render(c, s, "list", fiber.Map{"List": list, "Todos": sortedTodos(list), "TodoName": name})
		}

		h.L.WithFields(logrus.Fields{"session": s.ID(), "list_id": list.ID, "todo_id": todo.ID}).Info("todo added")
		s.SetSuccess("The todo was added.")
		return c.Redirect(listPath(list))
	})
}

// DeleteTodo removes a todo from a list. Unknown todo ids are ignored. XHR
// callers get 204 No Content.
func DeleteTodo(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}

		if id, ok := models.ParseID(c.Params("tid")); ok {
			list.DeleteTodo(id)
			h.L.WithFields(logrus.Fields{"session": s.ID(), "list_id": list.ID, "todo_id": id}).Info("todo deleted")
		}

		if c.XHR() {
			return c.SendStatus(fiber.StatusNoContent)
		}
		s.SetSuccess("The todo has been deleted.")
		return c.Redirect(listPath(list))
	})
}

// ToggleTodo sets the completion of a todo from the completed form field.
// Only the literal "true" marks it completed.
func ToggleTodo(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}

		err := models.ErrNotFound
		if id, ok := models.ParseID(c.Params("tid")); ok {
			err = list.ToggleTodo(id, c.FormValue("completed") == "true")
		}
		if errors.Is(err, models.ErrNotFound) {
			s.SetError(todoNotFoundMessage)
			return c.Redirect(listPath(list))
		}

		s.SetSuccess("The todo has been updated.")
		return c.Redirect(listPath(list))
	})
}

func CompleteAllTodos(h *Handler) fiber.Handler {
	return h.WithState(func(c *fiber.Ctx, s *State) error {
		list, ok := findList(c, s)
		if !ok {
			return h.listNotFound(c, s)
		}

		if err := list.CompleteAll(); err != nil {
			s.SetError("No todos to complete.")
			return c.Redirect(listPath(list))
		}

		h.L.WithFields(logrus.Fields{"session": s.ID(), "list_id": list.ID}).Info("all todos completed")
		s.SetSuccess("All todos have been completed.")
		return c.Redirect(listPath(list))
	})
}
