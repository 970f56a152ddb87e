package models

import "iter"

// Sorted yields every list with its position in creation order, incomplete
// lists first and completed ones after. Relative order is kept within each
// group and the collection is not modified.
func (ls *Lists) Sorted() iter.Seq2[int, *List] {
	return func(yield func(int, *List) bool) {
		for _, done := range []bool{false, true} {
			for i, id := range ls.Order {
				list := ls.ByID[id]
				if list.Completed() != done {
					continue
				}
				if !yield(i, list) {
					return
				}
			}
		}
	}
}

// SortedTodos yields incomplete todos first, then completed ones, keeping
// insertion order within each group.
func (l *List) SortedTodos() iter.Seq[*Todo] {
	return func(yield func(*Todo) bool) {
		for _, done := range []bool{false, true} {
			for _, id := range l.TodoOrder {
				todo := l.Todos[id]
				if todo.Completed != done {
					continue
				}
				if !yield(todo) {
					return
				}
			}
		}
	}
}
