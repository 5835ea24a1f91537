// Package testutil provides a fake SD-WAN controller for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Update is one recorded WAN interface PUT.
type Update struct {
	SiteID      string
	InterfaceID string
	Body        map[string]interface{}
}

// FakeController is an in-process controller API. Configure the exported
// fields before issuing requests; recorded calls are read back through the
// accessor methods.
type FakeController struct {
	Server *httptest.Server

	Token      string
	Email      string
	Password   string
	TenantID   string
	TenantName string

	// CookieOnlyLogin makes login answer with a session cookie and no
	// x_auth_token in the body.
	CookieOnlyLogin bool

	Labels     []map[string]interface{}
	Sites      []map[string]interface{}
	Interfaces map[string][]map[string]interface{}

	FailTenant   bool
	FailSites    bool
	FailLabels   bool
	FailUpdateOf map[string]bool

	mu       sync.Mutex
	updates  []Update
	logins   int
	logouts  int
	requests []string
}

// NewFakeController starts a fake controller seeded with Fixture data. The
// server is closed when the test ends.
func NewFakeController(t *testing.T) *FakeController {
	t.Helper()

	f := &FakeController{
		Token:        "fake-token",
		Email:        "operator@example.com",
		Password:     "s3cret",
		TenantID:     "tenant-1",
		TenantName:   "Example Corp",
		Labels:       FixtureLabels(),
		Sites:        FixtureSites(),
		Interfaces:   FixtureInterfaces(),
		FailUpdateOf: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /{version}/api/login", f.handleLogin)
	mux.HandleFunc("GET /{version}/api/logout", f.handleLogout)
	mux.HandleFunc("GET /{version}/api/profile", f.authed(f.handleProfile))
	mux.HandleFunc("GET /{version}/api/tenants/{tenant}", f.authed(f.handleTenant))
	mux.HandleFunc("GET /{version}/api/tenants/{tenant}/waninterfacelabels", f.authed(f.handleLabels))
	mux.HandleFunc("GET /{version}/api/tenants/{tenant}/sites", f.authed(f.handleSites))
	mux.HandleFunc("GET /{version}/api/tenants/{tenant}/sites/{site}/waninterfaces", f.authed(f.handleInterfaces))
	mux.HandleFunc("PUT /{version}/api/tenants/{tenant}/sites/{site}/waninterfaces/{id}", f.authed(f.handleUpdate))

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake controller.
func (f *FakeController) URL() string {
	return f.Server.URL
}

// Updates returns the recorded WAN interface updates in arrival order.
func (f *FakeController) Updates() []Update {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Update(nil), f.updates...)
}

// Logins returns the number of login attempts.
func (f *FakeController) Logins() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

// Logouts returns the number of logout calls.
func (f *FakeController) Logouts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logouts
}

// Requests returns "METHOD path" for every request received.
func (f *FakeController) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeController) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeController) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			if c, err := r.Cookie("AUTH_TOKEN"); err == nil {
				token = c.Value
			}
		}
		if token != f.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"_error": []map[string]string{{"code": "UNAUTHORIZED", "message": "invalid token"}},
			})
			return
		}
		if tenant := r.PathValue("tenant"); tenant != "" && tenant != f.TenantID {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "wrong tenant"})
			return
		}
		next(w, r)
	}
}

func (f *FakeController) handleLogin(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.logins++
	f.mu.Unlock()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if req.Email != f.Email || req.Password != f.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
		return
	}
	if f.CookieOnlyLogin {
		http.SetCookie(w, &http.Cookie{Name: "AUTH_TOKEN", Value: f.Token, Path: "/"})
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"x_auth_token": f.Token})
}

func (f *FakeController) handleLogout(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.logouts++
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (f *FakeController) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"tenant_id": f.TenantID, "email": f.Email})
}

func (f *FakeController) handleTenant(w http.ResponseWriter, r *http.Request) {
	if f.FailTenant {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "tenant unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": f.TenantID, "name": f.TenantName})
}

func (f *FakeController) handleLabels(w http.ResponseWriter, r *http.Request) {
	if f.FailLabels {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "labels unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": f.Labels})
}

func (f *FakeController) handleSites(w http.ResponseWriter, r *http.Request) {
	if f.FailSites {
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": "sites unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": f.Sites})
}

func (f *FakeController) handleInterfaces(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	items := f.Interfaces[r.PathValue("site")]
	f.mu.Unlock()
	if items == nil {
		items = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (f *FakeController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	siteID, id := r.PathValue("site"), r.PathValue("id")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	f.mu.Lock()
	f.updates = append(f.updates, Update{SiteID: siteID, InterfaceID: id, Body: body})
	fail := f.FailUpdateOf[id]
	if !fail {
		for i, rec := range f.Interfaces[siteID] {
			if rec["id"] == id {
				f.Interfaces[siteID][i] = body
			}
		}
	}
	f.mu.Unlock()

	if fail {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "update rejected"})
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
