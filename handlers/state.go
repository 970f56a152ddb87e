package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jalexanderII/session-todos/models"
)

const (
	listsKey   = "lists"
	errorKey   = "error"
	successKey = "success"
)

// State is the per-client view of the session: the list collection and the
// pending flash messages. Handlers get it explicitly through WithState.
type State struct {
	Lists *models.Lists
	sess  *session.Session
}

// Flash holds the one-shot messages shown on the next rendered page.
type Flash struct {
	Error   string
	Success string
}

// StateHandler is a route handler operating on the caller's session state.
type StateHandler func(c *fiber.Ctx, s *State) error

// LoadState reads the caller's session, starting with an empty collection on
// first contact.
func (h *Handler) LoadState(c *fiber.Ctx) (*State, error) {
	sess, err := h.Store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	lists, ok := sess.Get(listsKey).(models.Lists)
	if !ok {
		lists = *models.NewLists()
	}
	return &State{Lists: &lists, sess: sess}, nil
}

// Save writes the state back to the session store. The underlying session
// must not be used afterwards.
func (s *State) Save() error {
	s.sess.Set(listsKey, *s.Lists)
	if err := s.sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *State) ID() string {
	return s.sess.ID()
}

func (s *State) SetError(msg string) {
	s.sess.Set(errorKey, msg)
}

func (s *State) SetSuccess(msg string) {
	s.sess.Set(successKey, msg)
}

// PopFlash returns the pending flash messages and clears them.
func (s *State) PopFlash() Flash {
	var f Flash
	f.Error, _ = s.sess.Get(errorKey).(string)
	f.Success, _ = s.sess.Get(successKey).(string)
	s.sess.Delete(errorKey)
	s.sess.Delete(successKey)
	return f
}

// WithState loads the session state, runs fn and saves the state when fn
// succeeds.
func (h *Handler) WithState(fn StateHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.LoadState(c)
		if err != nil {
			h.L.WithError(err).Error("failed to load session")
			return err
		}
		if err = fn(c, s); err != nil {
			return err
		}
		if err = s.Save(); err != nil {
			h.L.WithError(err).Error("failed to save session")
			return err
		}
		return nil
	}
}
