package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/jalexanderII/session-todos/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

type apiTodo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type apiList struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	Todos     []apiTodo `json:"todos"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		Port:              ":0",
		LogLevel:          logrus.PanicLevel,
		SessionStore:      config.SessionStoreMemory,
		SessionExpiration: time.Hour,
		CookieKey:         encryptcookie.GenerateKey(),
		RateLimitMax:      10000,
	}
	l := logrus.New()
	l.SetOutput(io.Discard)

	a, closeStorage, err := New(cfg, l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStorage() })
	return a
}

func newTestClient(t *testing.T, a *fiber.App) *testClient {
	return &testClient{t: t, app: a}
}

func (c *testClient) do(method, path string, form url.Values, xhr bool) *http.Response {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if xhr {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			c.cookie = cookie
		}
	}
	return resp
}

func (c *testClient) get(path string) *http.Response {
	return c.do(http.MethodGet, path, nil, false)
}

func (c *testClient) post(path string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, path, form, false)
}

func (c *testClient) body(resp *http.Response) string {
	c.t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return string(b)
}

func (c *testClient) lists() []apiList {
	c.t.Helper()
	resp := c.get("/api/lists")
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var out struct {
		Status string    `json:"status"`
		Data   []apiList `json:"data"`
	}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(c.t, "success", out.Status)
	return out.Data
}

func (c *testClient) list(id string) apiList {
	c.t.Helper()
	resp := c.get("/api/lists/" + id)
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data apiList `json:"data"`
	}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Data
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func TestRootAndHealth(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	assertRedirect(t, c.get("/"), "/lists")

	resp := c.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", c.body(resp))
}

func TestStaticAssets(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	resp := c.get("/static/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), "XMLHttpRequest")
}

func TestEmptyIndex(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	resp := c.get("/lists")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), "You have no lists yet.")
	assert.Empty(t, c.lists())
}

func TestCreateListFlashIsShownOnce(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	assertRedirect(t, c.post("/lists", url.Values{"list_name": {"  Groceries  "}}), "/lists")

	body := c.body(c.get("/lists"))
	assert.Contains(t, body, "Groceries")
	assert.Contains(t, body, "The list has been created.")

	body = c.body(c.get("/lists"))
	assert.Contains(t, body, "Groceries")
	assert.NotContains(t, body, "The list has been created.")

	lists := c.lists()
	require.Len(t, lists, 1)
	assert.Equal(t, apiList{ID: 1, Name: "Groceries", Todos: []apiTodo{}}, lists[0])
}

func TestCreateListInvalidName(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	resp := c.post("/lists", url.Values{"list_name": {"   "}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), "List names must be between 1 and 100 characters long")

	long := strings.Repeat("a", 101)
	resp = c.post("/lists", url.Values{"list_name": {long}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := c.body(resp)
	assert.Contains(t, body, "List names must be between 1 and 100 characters long")
	assert.Contains(t, body, `value="`+long+`"`)

	assert.Empty(t, c.lists())

	// the error was consumed by the form render
	assert.NotContains(t, c.body(c.get("/lists")), "characters long")
}

func TestCreateListDuplicateName(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	assertRedirect(t, c.post("/lists", url.Values{"list_name": {"Work"}}), "/lists")
	assertRedirect(t, c.post("/lists", url.Values{"list_name": {"Home"}}), "/lists")

	resp := c.post("/lists", url.Values{"list_name": {"Work"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), "That todo list name already exists")
	assert.Len(t, c.lists(), 2)
}

func TestRenameList(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Work"}})
	c.post("/lists", url.Values{"list_name": {"Home"}})

	resp := c.get("/lists/1/edit")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), `value="Work"`)

	assertRedirect(t, c.post("/lists/1", url.Values{"list_name": {"Work"}}), "/lists/1")

	resp = c.post("/lists/1", url.Values{"list_name": {"Home"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), "That todo list name already exists")

	assertRedirect(t, c.post("/lists/1", url.Values{"list_name": {"Office"}}), "/lists/1")
	assert.Contains(t, c.body(c.get("/lists/1")), "The list has been updated.")
	assert.Equal(t, "Office", c.list("1").Name)
}

func TestListNotFound(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Work"}})

	for _, path := range []string{"/lists/99", "/lists/abc", "/lists/01", "/lists/99/edit"} {
		assertRedirect(t, c.get(path), "/lists")
		assert.Contains(t, c.body(c.get("/lists")), "The specified list was not found.")
	}

	assertRedirect(t, c.post("/lists/99/todos", url.Values{"todo": {"Milk"}}), "/lists")
	assertRedirect(t, c.post("/lists/99/todos/complete", nil), "/lists")

	resp := c.do(http.MethodPost, "/lists/99/todos/1/delete", url.Values{}, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = c.get("/api/lists/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGroceriesScenario(t *testing.T) {
	c := newTestClient(t, newTestApp(t))

	c.post("/lists", url.Values{"list_name": {"Groceries"}})
	assertRedirect(t, c.post("/lists/1/todos", url.Values{"todo": {"Milk"}}), "/lists/1")
	assertRedirect(t, c.post("/lists/1/todos/1/toggle", url.Values{"completed": {"true"}}), "/lists/1")

	list := c.list("1")
	assert.True(t, list.Completed)
	assert.Equal(t, []apiTodo{{ID: 1, Name: "Milk", Completed: true}}, list.Todos)

	c.post("/lists/1/todos", url.Values{"todo": {"Eggs"}})
	list = c.list("1")
	assert.False(t, list.Completed)
	// the API keeps insertion order
	assert.Equal(t, []apiTodo{{ID: 1, Name: "Milk", Completed: true}, {ID: 2, Name: "Eggs"}}, list.Todos)

	body := c.body(c.get("/lists"))
	assert.Contains(t, body, "1 / 2")

	assertRedirect(t, c.post("/lists/1/todos/1/toggle", url.Values{"completed": {"yes"}}), "/lists/1")
	assert.False(t, c.list("1").Todos[0].Completed)
}

func TestAddTodoInvalidName(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Groceries"}})

	resp := c.post("/lists/1/todos", url.Values{"todo": {""}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, c.body(resp), "Todos must be between 1 and 200 characters long")
	assert.Empty(t, c.list("1").Todos)
}

func TestToggleUnknownTodo(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Groceries"}})

	assertRedirect(t, c.post("/lists/1/todos/5/toggle", url.Values{"completed": {"true"}}), "/lists/1")
	assert.Contains(t, c.body(c.get("/lists/1")), "The specified todo was not found.")
}

func TestCompleteAll(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Groceries"}})

	assertRedirect(t, c.post("/lists/1/todos/complete", nil), "/lists/1")
	assert.Contains(t, c.body(c.get("/lists/1")), "No todos to complete.")

	c.post("/lists/1/todos", url.Values{"todo": {"Milk"}})
	c.post("/lists/1/todos", url.Values{"todo": {"Eggs"}})
	assertRedirect(t, c.post("/lists/1/todos/complete", nil), "/lists/1")
	assert.Contains(t, c.body(c.get("/lists/1")), "All todos have been completed.")

	list := c.list("1")
	assert.True(t, list.Completed)
	for _, todo := range list.Todos {
		assert.True(t, todo.Completed, todo.Name)
	}
}

func TestDeleteTodo(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Groceries"}})
	c.post("/lists/1/todos", url.Values{"todo": {"Milk"}})
	c.post("/lists/1/todos", url.Values{"todo": {"Eggs"}})
	c.post("/lists/1/todos", url.Values{"todo": {"Bread"}})

	assertRedirect(t, c.post("/lists/1/todos/1/delete", nil), "/lists/1")

	resp := c.do(http.MethodPost, "/lists/1/todos/2/delete", url.Values{}, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// unknown ids are ignored
	resp = c.do(http.MethodPost, "/lists/1/todos/42/delete", url.Values{}, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, []apiTodo{{ID: 3, Name: "Bread"}}, c.list("1").Todos)

	c.post("/lists/1/todos", url.Values{"todo": {"Jam"}})
	assert.Equal(t, 4, c.list("1").Todos[1].ID)
}

func TestDeleteList(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Work"}})
	c.post("/lists", url.Values{"list_name": {"Home"}})

	assertRedirect(t, c.post("/lists/1/delete", nil), "/lists")
	assert.Contains(t, c.body(c.get("/lists")), "The list has been deleted.")

	resp := c.do(http.MethodPost, "/lists/2/delete", url.Values{}, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/lists", c.body(resp))
	assert.Empty(t, c.lists())

	// deleting again is a no-op
	assertRedirect(t, c.post("/lists/2/delete", nil), "/lists")

	c.post("/lists", url.Values{"list_name": {"Garden"}})
	lists := c.lists()
	require.Len(t, lists, 1)
	assert.Equal(t, 3, lists[0].ID)
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newTestApp(t)
	alice := newTestClient(t, a)
	bob := newTestClient(t, a)

	alice.post("/lists", url.Values{"list_name": {"Work"}})
	assert.Len(t, alice.lists(), 1)
	assert.Empty(t, bob.lists())

	// same name is fine in another session
	assertRedirect(t, bob.post("/lists", url.Values{"list_name": {"Work"}}), "/lists")
}

func TestSortedIndex(t *testing.T) {
	c := newTestClient(t, newTestApp(t))
	c.post("/lists", url.Values{"list_name": {"Done"}})
	c.post("/lists", url.Values{"list_name": {"Open"}})
	c.post("/lists/1/todos", url.Values{"todo": {"x"}})
	c.post("/lists/1/todos/complete", nil)

	lists := c.lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "Open", lists[0].Name)
	assert.Equal(t, "Done", lists[1].Name)

	body := c.body(c.get("/lists"))
	assert.Less(t, strings.Index(body, "Open"), strings.Index(body, "Done"))
	assert.Contains(t, body, `class="complete"`)
}
