package ui

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/config"
	"github.com/kalpyotish/kalp-admin/internal/session"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

func testSession(t *testing.T, admin *api.Admin) (*session.Session, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(admin)
	sess := session.New(store)
	require.NoError(t, sess.Init())
	return sess, store
}

func typeInto(a App, s string) App {
	model, _ := a.Update(keyRunes(s))
	return model.(App)
}

func pressKey(a App, k tea.KeyType) (App, tea.Cmd) {
	model, cmd := a.Update(tea.KeyMsg{Type: k})
	return model.(App), cmd
}

func TestAppLoginFlow(t *testing.T) {
	var got api.LoginInput
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/login" {
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusOK, map[string]any{"admin": map[string]any{
				"_id": "ad1", "name": "Asha", "email": "asha@kalp.in", "token": "tok-1",
			}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"total": 3}})
	})
	sess, store := testSession(t, nil)
	app := NewApp(client, &config.Config{}, sess, nil)
	require.False(t, app.signedIn)
	assert.Contains(t, stripANSI(app.View()), "Admin Login")

	app = typeInto(app, "asha@kalp.in")
	app, _ = pressKey(app, tea.KeyEnter)
	app = typeInto(app, "s3cret")
	assert.NotContains(t, app.View(), "s3cret")

	app, cmd := pressKey(app, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, app.login.submitting)

	model, _ := app.Update(cmd())
	app = model.(App)

	assert.Equal(t, api.LoginInput{Email: "asha@kalp.in", Password: "s3cret"}, got)
	assert.True(t, app.signedIn)
	assert.Equal(t, tabDashboard, app.tab)
	assert.Equal(t, "Login successful 🎉", app.toast.Message())
	saved, err := store.LoadAdmin()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "tok-1", saved.Token)
	assert.Contains(t, stripANSI(app.View()), "Total Users")
}

func TestAppLoginRejected(t *testing.T) {
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{})
	})
	sess, _ := testSession(t, nil)
	app := NewApp(client, &config.Config{}, sess, nil)
	app = typeInto(app, "asha@kalp.in")
	app, _ = pressKey(app, tea.KeyDown)
	app = typeInto(app, "wrong")

	app, cmd := pressKey(app, tea.KeyEnter)
	require.NotNil(t, cmd)
	model, _ := app.Update(cmd())
	app = model.(App)

	assert.False(t, app.signedIn)
	assert.Equal(t, "Invalid credentials!", app.login.errText)
	_, ok := sess.Current()
	assert.False(t, ok)
}

func TestAppLoginValidationSkipsRequest(t *testing.T) {
	var hits int32
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})
	sess, _ := testSession(t, nil)
	app := NewApp(client, &config.Config{}, sess, nil)
	app = typeInto(app, "not-an-email")
	app, _ = pressKey(app, tea.KeyEnter)
	app = typeInto(app, "pw")

	app, cmd := pressKey(app, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Enter a valid email address.", app.login.errText)

	app.login.email = ""
	app, cmd = pressKey(app, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Email is required.", app.login.errText)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestAppTabSwitchMountsPage(t *testing.T) {
	var listCalls int32
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/all" {
			atomic.AddInt32(&listCalls, 1)
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{map[string]any{"_id": "p1", "name": "Mala"}}})
	})
	sess, _ := testSession(t, &api.Admin{Name: "Asha", Token: "tok"})
	app := NewApp(client, &config.Config{}, sess, nil)
	require.True(t, app.signedIn)

	model, cmd := app.Update(keyRunes("4"))
	app = model.(App)
	require.Equal(t, 3, app.tab)
	require.NotNil(t, cmd)

	model, _ = app.Update(cmd())
	app = model.(App)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
	assert.Contains(t, stripANSI(app.View()), "Mala")

	// Results for a page the user left still land on that page.
	model, _ = app.Update(keyRunes("1"))
	app = model.(App)
	model, _ = app.Update(recordsLoadedMsg{kind: api.Products, items: []api.Record{api.NewRecord("_id", "p2", "name", "Diya")}})
	app = model.(App)
	assert.Equal(t, "p2", app.pages[2].list.Items()[0].ID())
}

func TestAppTypingInSearchDoesNotSwitchTabs(t *testing.T) {
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})
	sess, _ := testSession(t, &api.Admin{Name: "Asha"})
	app := NewApp(client, &config.Config{}, sess, nil)
	app.tab = 1
	app.tabNav = false

	app = typeInto(app, "/")
	require.True(t, app.pages[0].searching)
	app = typeInto(app, "2q")

	assert.Equal(t, 1, app.tab)
	assert.Equal(t, "2q", app.pages[0].searchBuf)
}

func TestAppQuitConfirmsUnsavedDraft(t *testing.T) {
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})
	sess, _ := testSession(t, &api.Admin{Name: "Asha"})
	app := NewApp(client, &config.Config{}, sess, nil)
	app.tab = 3
	app.tabNav = false
	app = typeInto(app, "n")
	app = typeInto(app, "Lamp")

	app, cmd := pressKey(app, tea.KeyCtrlC)
	assert.Nil(t, cmd)
	assert.True(t, app.quitConfirm)
	assert.Contains(t, stripANSI(app.View()), "unsaved")

	app = typeInto(app, "n")
	assert.False(t, app.quitConfirm)
}

func TestAppConfirmedQuitReleasesPreviews(t *testing.T) {
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})
	sess, _ := testSession(t, &api.Admin{Name: "Asha"})
	app := NewApp(client, &config.Config{}, sess, nil)
	app.tab = 3
	app.tabNav = false
	app = typeInto(app, "n")
	require.NotNil(t, app.pages[2].draft)
	require.NoError(t, app.pages[2].draft.AddFiles(writeTestPNG(t, "mala.png")))
	require.Equal(t, 1, app.previews.Live())

	app, _ = pressKey(app, tea.KeyCtrlC)
	require.True(t, app.quitConfirm)

	model, cmd := app.Update(keyRunes("y"))
	app = model.(App)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, app.previews.Live())
}

func TestAppProfileLogout(t *testing.T) {
	client := testPageClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"total": 0}})
	})
	sess, store := testSession(t, &api.Admin{Name: "Asha", Email: "asha@kalp.in", Number: "98765"})
	app := NewApp(client, &config.Config{}, sess, nil)

	model, _ := app.Update(keyRunes("7"))
	app = model.(App)
	require.Equal(t, tabProfile, app.tab)
	out := stripANSI(app.View())
	assert.Contains(t, out, "asha@kalp.in")
	assert.Contains(t, out, "98765")

	app = typeInto(app, "o")
	require.True(t, app.profile.confirming)
	model, cmd := app.Update(keyRunes("y"))
	app = model.(App)
	require.NotNil(t, cmd)

	model, _ = app.Update(cmd())
	app = model.(App)
	assert.False(t, app.signedIn)
	assert.Equal(t, "Logged out.", app.toast.Message())
	admin, _ := store.LoadAdmin()
	assert.Nil(t, admin)
}

func TestAppToastExpiryRoutesByOwner(t *testing.T) {
	sess, _ := testSession(t, &api.Admin{Name: "Asha"})
	app := NewApp(api.NewClient("http://127.0.0.1:0"), &config.Config{}, sess, nil)
	app.toast.Show("hello", workflow.ToastSuccess)
	app.pages[2].toast.Show("Product added successfully!", workflow.ToastSuccess)

	model, _ := app.Update(workflow.ToastExpiredMsg{Owner: string(api.Products), Seq: 1})
	app = model.(App)
	assert.False(t, app.pages[2].toast.Visible())
	assert.True(t, app.toast.Visible())
}

func TestAppVimKeys(t *testing.T) {
	sess, _ := testSession(t, &api.Admin{Name: "Asha"})
	app := NewApp(api.NewClient("http://127.0.0.1:0"), &config.Config{VimKeys: true}, sess, nil)
	assert.Equal(t, tea.KeyDown, app.translateVimKeys(keyRunes("j")).Type)
	assert.Equal(t, tea.KeyUp, app.translateVimKeys(keyRunes("k")).Type)

	app.config.VimKeys = false
	assert.Equal(t, "j", app.translateVimKeys(keyRunes("j")).String())
}

func TestTabIndexForKey(t *testing.T) {
	idx, ok := tabIndexForKey("1")
	assert.True(t, ok)
	assert.Equal(t, tabDashboard, idx)
	idx, ok = tabIndexForKey("7")
	assert.True(t, ok)
	assert.Equal(t, tabProfile, idx)
	_, ok = tabIndexForKey("8")
	assert.False(t, ok)
	_, ok = tabIndexForKey("10")
	assert.False(t, ok)
}

func TestCenterBlockUniformPadsEvenly(t *testing.T) {
	out := centerBlockUniform("ab\nabcd", 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "   ab", lines[0])
	assert.Equal(t, "   abcd", lines[1])
	assert.Equal(t, "wide", centerBlockUniform("wide", 0))
}
