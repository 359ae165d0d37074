package desk

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termfolio/internal/layout"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// API exposes desk mutations over HTTP. Form posts are answered with a
// redirect back to the page; JSON clients get the new snapshot.
type API struct {
	Desks *Manager
	// Exists reports whether content can be shown. Nil accepts everything.
	Exists func(tile.Content) bool
}

// RegisterRoutes mounts the desk endpoints. r must be wrapped in Visitors.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Get("/desk/state", a.handleState)
	r.Post("/desk/spawn", a.handleSpawn)
	r.Post("/desk/tiles/{id}/focus", a.handleFocus)
	r.Post("/desk/tiles/{id}/close", a.handleClose)
	r.Post("/desk/keys", a.handleKey)
	r.Post("/desk/back", a.handleBack)
	r.Post("/desk/forward", a.handleForward)
	r.Post("/desk/viewport", a.handleViewport)
	r.Post("/theme", a.handleTheme)
	r.Post("/theme/reset", a.handleThemeReset)
}

func (a *API) with(r *http.Request, fn func(*Desk)) Snapshot {
	var snap Snapshot
	a.Desks.With(VisitorID(r.Context()), func(d *Desk) {
		fn(d)
		snap = d.Snapshot()
	})
	return snap
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.with(r, func(*Desk) {}))
}

func (a *API) handleSpawn(w http.ResponseWriter, r *http.Request) {
	c, err := tile.Parse(r.FormValue("kind"), r.FormValue("data"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if a.Exists != nil && !a.Exists(c) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such content: " + c.Key()})
		return
	}
	a.respond(w, r, a.with(r, func(d *Desk) { d.Open(c) }))
}

// Unknown ids are ignored, matching the registry.
func (a *API) handleFocus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.respond(w, r, a.with(r, func(d *Desk) { d.Focus.Select(id) }))
}

func (a *API) handleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.respond(w, r, a.with(r, func(d *Desk) { d.Focus.Close(id) }))
}

type keyResponse struct {
	Action string   `json:"action"`
	State  Snapshot `json:"state"`
}

func (a *API) handleKey(w http.ResponseWriter, r *http.Request) {
	k := r.FormValue("key")
	var action string
	snap := a.with(r, func(d *Desk) { action = d.Focus.HandleKey(k).String() })
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, keyResponse{Action: action, State: snap})
		return
	}
	redirectBack(w, r)
}

func (a *API) handleBack(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, a.with(r, func(d *Desk) { d.Focus.Back() }))
}

func (a *API) handleForward(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, a.with(r, func(d *Desk) { d.Focus.Forward() }))
}

func (a *API) handleViewport(w http.ResponseWriter, r *http.Request) {
	var vp layout.Viewport
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid viewport"})
			return
		}
	} else {
		vp.Width, _ = strconv.Atoi(r.FormValue("width"))
		vp.Height, _ = strconv.Atoi(r.FormValue("height"))
	}
	if vp.Width <= 0 || vp.Height < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "width must be positive"})
		return
	}
	a.with(r, func(d *Desk) { d.SetViewport(vp) })
	w.WriteHeader(http.StatusNoContent)
}

// Invalid values are ignored field by field.
func (a *API) handleTheme(w http.ResponseWriter, r *http.Request) {
	snap := a.with(r, func(d *Desk) {
		if v := r.FormValue("preset"); v != "" {
			d.Theme.SetPreset(v)
		}
		if v := r.FormValue("accent"); v != "" {
			d.Theme.SetAccent(v)
		}
		if v := r.FormValue("background"); v != "" {
			d.Theme.SetBackground(v)
		}
	})
	a.respond(w, r, snap)
}

func (a *API) handleThemeReset(w http.ResponseWriter, r *http.Request) {
	var resetErr error
	snap := a.with(r, func(d *Desk) { resetErr = d.Theme.Reset() })
	if resetErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": resetErr.Error()})
		return
	}
	a.respond(w, r, snap)
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, snap Snapshot) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, snap)
		return
	}
	redirectBack(w, r)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// redirectBack honours a local "return" form value, else goes to "/".
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.FormValue("return")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
