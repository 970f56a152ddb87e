package models

import (
	"encoding/json"
	"slices"
)

// List is a named, ordered collection of todos. Todos are keyed by id and
// TodoOrder keeps the insertion order used for display.
type List struct {
	ID         int
	Name       string
	TodoOrder  []int
	Todos      map[int]*Todo
	LastTodoID int
}

// Completed reports whether the list has at least one todo and every todo is done.
func (l *List) Completed() bool {
	return l.TodosCount() > 0 && l.TodosLeft() == 0
}

func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int     `json:"id"`
		Name      string  `json:"name"`
		Completed bool    `json:"completed"`
		Todos     []*Todo `json:"todos"`
	}{
		ID:        l.ID,
		Name:      l.Name,
		Completed: l.Completed(),
		Todos:     l.Items(),
	})
}

// Lists is the per-session collection of todo lists.
//
// LastID is the highest id ever handed out, so ids freed by DeleteList are
// never assigned again.
type Lists struct {
	Order  []int
	ByID   map[int]*List
	LastID int
}

func NewLists() *Lists {
	return &Lists{ByID: make(map[int]*List)}
}

func (ls *Lists) Len() int {
	return len(ls.Order)
}

func (ls *Lists) Get(id int) (*List, bool) {
	list, ok := ls.ByID[id]
	return list, ok
}

// All returns the lists in creation order.
func (ls *Lists) All() []*List {
	all := make([]*List, 0, len(ls.Order))
	for _, id := range ls.Order {
		all = append(all, ls.ByID[id])
	}
	return all
}

func (ls *Lists) CreateList(name string) (*List, error) {
	if err := ValidateListName(name, ls, 0); err != nil {
		return nil, err
	}
	if ls.ByID == nil {
		ls.ByID = make(map[int]*List)
	}

	ls.LastID++
	list := &List{ID: ls.LastID, Name: name, Todos: make(map[int]*Todo)}
	ls.ByID[list.ID] = list
	ls.Order = append(ls.Order, list.ID)
	return list, nil
}

// RenameList changes the name of list id. Keeping the current name only
// checks its length.
func (ls *Lists) RenameList(id int, name string) error {
	list, ok := ls.ByID[id]
	if !ok {
		return ErrNotFound
	}

	var err error
	if name == list.Name {
		err = validateLength(name, MaxListNameLength, listNameLengthMessage)
	} else {
		err = ValidateListName(name, ls, id)
	}
	if err != nil {
		return err
	}

	list.Name = name
	return nil
}

// DeleteList removes list id. Missing ids are ignored.
func (ls *Lists) DeleteList(id int) {
	if _, ok := ls.ByID[id]; !ok {
		return
	}
	delete(ls.ByID, id)
	ls.Order = removeID(ls.Order, id)
}

func removeID(ids []int, id int) []int {
	return slices.DeleteFunc(ids, func(v int) bool { return v == id })
}
