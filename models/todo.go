package models

type Todo struct {
	ID        int    `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Completed bool   `json:"completed" bson:"completed"`
}

// AddTodo validates name and appends a new incomplete todo to the list.
func (l *List) AddTodo(name string) (*Todo, error) {
	if err := ValidateTodoName(name); err != nil {
		return nil, err
	}
	if l.Todos == nil {
		l.Todos = make(map[int]*Todo)
	}

	l.LastTodoID++
	todo := &Todo{ID: l.LastTodoID, Name: name}
	l.Todos[todo.ID] = todo
	l.TodoOrder = append(l.TodoOrder, todo.ID)
	return todo, nil
}

func (l *List) Todo(id int) (*Todo, bool) {
	todo, ok := l.Todos[id]
	return todo, ok
}

// DeleteTodo removes the todo with the given id. Missing ids are ignored.
func (l *List) DeleteTodo(id int) {
	if _, ok := l.Todos[id]; !ok {
		return
	}
	delete(l.Todos, id)
	l.TodoOrder = removeID(l.TodoOrder, id)
}

func (l *List) ToggleTodo(id int, completed bool) error {
	todo, ok := l.Todos[id]
	if !ok {
		return ErrNotFound
	}
	todo.Completed = completed
	return nil
}

// CompleteAll marks every todo as completed. A list without todos is left
// untouched and ErrEmptyOperation is returned.
func (l *List) CompleteAll() error {
	if l.TodosCount() == 0 {
		return ErrEmptyOperation
	}
	for _, todo := range l.Todos {
		todo.Completed = true
	}
	return nil
}

// Items returns the todos in insertion order.
func (l *List) Items() []*Todo {
	items := make([]*Todo, 0, len(l.TodoOrder))
	for _, id := range l.TodoOrder {
		items = append(items, l.Todos[id])
	}
	return items
}

func (l *List) TodosCount() int {
	return len(l.TodoOrder)
}

func (l *List) TodosLeft() int {
	left := 0
	for _, todo := range l.Todos {
		if !todo.Completed {
			left++
		}
	}
	return left
}
