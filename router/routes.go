package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/session-todos/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", handlers.HandleRoot)
	app.Get("/health", handlers.HandleHealthCheck)

	lists := app.Group("/lists")
	lists.Get("/", handlers.GetLists(h))
	lists.Post("/", handlers.CreateList(h))
	lists.Get("/new", handlers.NewListForm(h))
	lists.Get("/:id", handlers.GetList(h))
	lists.Post("/:id", handlers.UpdateList(h))
	lists.Get("/:id/edit", handlers.EditListForm(h))
	lists.Post("/:id/delete", handlers.DeleteList(h))

	todos := lists.Group("/:id/todos")
	todos.Post("/", handlers.AddTodo(h))
	todos.Post("/complete", handlers.CompleteAllTodos(h))
	todos.Post("/:tid/delete", handlers.DeleteTodo(h))
	todos.Post("/:tid/toggle", handlers.ToggleTodo(h))

	api := app.Group("/api")
	api.Get("/lists", handlers.GetListsJSON(h))
	api.Get("/lists/:id", handlers.GetListJSON(h))
}
