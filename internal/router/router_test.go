package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/baco-dev/baco/internal/auth"
	"github.com/baco-dev/baco/internal/router"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/store/memstore"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWTSecret(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type api struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	return &api{t: t, engine: router.NewRouter(memstore.New(), services.LogMailer{})}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// register creates a user through the API and logs in for a token.
func (a *api) register(name, email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "hunter2hunter2",
	})
	if w.Code != http.StatusCreated {
		a.t.Fatalf("register %s: status %d: %s", email, w.Code, w.Body.String())
	}

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "hunter2hunter2",
	})
	if w.Code != http.StatusOK {
		a.t.Fatalf("login %s: status %d: %s", email, w.Code, w.Body.String())
	}
	cookie := w.Result().Cookies()
	for _, c := range cookie {
		if c.Name == "token" {
			return c.Value
		}
	}
	a.t.Fatalf("login %s: no token cookie", email)
	return ""
}

func (a *api) createEvent(token string, body gin.H) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/events", token, body)
	if w.Code != http.StatusCreated {
		a.t.Fatalf("create event: status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID uint `json:"id"`
	}
	decode(a.t, w, &resp)
	return resp.ID
}

type participantBody struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type notificationBody struct {
	ID      uint   `json:"id"`
	Type    string `json:"type"`
	EventID *uint  `json:"event_id"`
	Read    bool   `json:"read"`
}

func (a *api) notifications(token string) []notificationBody {
	a.t.Helper()
	w := a.do(http.MethodGet, "/api/notifications", token, nil)
	if w.Code != http.StatusOK {
		a.t.Fatalf("list notifications: status %d: %s", w.Code, w.Body.String())
	}
	var list []notificationBody
	decode(a.t, w, &list)
	return list
}

func TestApplicationEventFlow(t *testing.T) {
	a := newAPI(t)
	ana := a.register("Ana", "ana@example.com")
	bruno := a.register("Bruno", "bruno@example.com")
	clara := a.register("Clara", "clara@example.com")

	eventID := a.createEvent(ana, gin.H{
		"name":       "Supper Club",
		"date":       "2026-09-12",
		"start_time": "20:00",
		"event_type": "private_application",
		"capacity":   2,
	})

	// Bruno applies and lands in pending.
	w := a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/participate", eventID), bruno, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("join: status %d: %s", w.Code, w.Body.String())
	}
	var p participantBody
	decode(t, w, &p)
	if p.Status != "pending" {
		t.Errorf("join status = %q, want pending", p.Status)
	}

	// The organizer is told about the request; the applicant hears nothing yet.
	anaInbox := a.notifications(ana)
	if len(anaInbox) != 1 || anaInbox[0].Type != "participant_request" {
		t.Fatalf("organizer inbox = %+v, want one participant_request", anaInbox)
	}
	if got := a.notifications(bruno); len(got) != 0 {
		t.Errorf("applicant inbox = %+v, want empty", got)
	}

	// Clara cannot read the chat while unapproved.
	w = a.do(http.MethodGet, fmt.Sprintf("/api/events/%d/chat", eventID), clara, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("stranger chat read: status %d, want 403", w.Code)
	}

	// Ana approves; Bruno gets exactly one approval notification.
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/participants/%d/approve", p.ID), ana, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: status %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &p)
	if p.Status != "approved" {
		t.Errorf("approve status = %q, want approved", p.Status)
	}
	brunoInbox := a.notifications(bruno)
	if len(brunoInbox) != 1 || brunoInbox[0].Type != "participation_approved" {
		t.Fatalf("applicant inbox = %+v, want one participation_approved", brunoInbox)
	}

	// Approving again is a conflict, not a second notification.
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/participants/%d/approve", p.ID), ana, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("double approve: status %d, want 409", w.Code)
	}
	if got := a.notifications(bruno); len(got) != 1 {
		t.Errorf("applicant inbox after double approve = %d entries, want 1", len(got))
	}

	// Bruno can chat now, Clara still cannot.
	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/chat", eventID), bruno, gin.H{"content": "looking forward to it"})
	if w.Code != http.StatusCreated {
		t.Fatalf("approved chat post: status %d: %s", w.Code, w.Body.String())
	}
	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/chat", eventID), clara, gin.H{"content": "hi"})
	if w.Code != http.StatusForbidden {
		t.Errorf("stranger chat post: status %d, want 403", w.Code)
	}

	// Clara fills the last seat, a fourth applicant bounces off capacity.
	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/participate", eventID), clara, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("second join: status %d: %s", w.Code, w.Body.String())
	}
	var pClara participantBody
	decode(t, w, &pClara)
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/participants/%d/approve", pClara.ID), ana, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve second: status %d: %s", w.Code, w.Body.String())
	}

	dora := a.register("Dora", "dora@example.com")
	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/participate", eventID), dora, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("third join: status %d: %s", w.Code, w.Body.String())
	}
	var pDora participantBody
	decode(t, w, &pDora)
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/participants/%d/approve", pDora.ID), ana, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("approve past capacity: status %d, want 409", w.Code)
	}
}

func TestPublicEventFlow(t *testing.T) {
	a := newAPI(t)
	ana := a.register("Ana", "ana@example.com")
	bruno := a.register("Bruno", "bruno@example.com")

	eventID := a.createEvent(ana, gin.H{
		"name":       "Park Run",
		"date":       "2026-09-05",
		"start_time": "08:00",
		"event_type": "public",
	})

	// Public events confirm immediately and stay quiet.
	w := a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/participate", eventID), bruno, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("join: status %d: %s", w.Code, w.Body.String())
	}
	var p participantBody
	decode(t, w, &p)
	if p.Status != "confirmed" {
		t.Errorf("join status = %q, want confirmed", p.Status)
	}
	if got := a.notifications(ana); len(got) != 0 {
		t.Errorf("organizer inbox = %+v, want empty", got)
	}

	// No chat on a public event, not even for the creator.
	w = a.do(http.MethodGet, fmt.Sprintf("/api/events/%d/chat", eventID), ana, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("public event chat: status %d, want 403", w.Code)
	}

	// Joining your own event is a conflict.
	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/participate", eventID), ana, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("creator join: status %d, want 409", w.Code)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	a := newAPI(t)
	ana := a.register("Ana", "ana@example.com")
	bruno := a.register("Bruno", "bruno@example.com")
	clara := a.register("Clara", "clara@example.com")

	eventID := a.createEvent(ana, gin.H{
		"name":       "Supper Club",
		"date":       "2026-09-12",
		"start_time": "20:00",
		"event_type": "private_application",
	})
	for _, token := range []string{bruno, clara} {
		w := a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/participate", eventID), token, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("join: status %d: %s", w.Code, w.Body.String())
		}
	}

	inbox := a.notifications(ana)
	if len(inbox) != 2 {
		t.Fatalf("organizer inbox has %d entries, want 2", len(inbox))
	}

	// Single mark-read.
	w := a.do(http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", inbox[0].ID), ana, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark read: status %d: %s", w.Code, w.Body.String())
	}

	// Another user cannot touch it.
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", inbox[0].ID), bruno, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign mark read: status %d, want 403", w.Code)
	}

	// Mark-all via the literal "all" segment.
	w = a.do(http.MethodPatch, "/api/notifications/all/read", ana, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark all read: status %d: %s", w.Code, w.Body.String())
	}
	for _, n := range a.notifications(ana) {
		if !n.Read {
			t.Errorf("notification %d still unread after mark-all", n.ID)
		}
	}

	// Delete removes the entry from the caller's list.
	w = a.do(http.MethodDelete, fmt.Sprintf("/api/notifications/%d", inbox[0].ID), ana, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete notification: status %d: %s", w.Code, w.Body.String())
	}
	if got := a.notifications(ana); len(got) != 1 {
		t.Errorf("inbox has %d entries after delete, want 1", len(got))
	}
}

func TestInviteEndpoints(t *testing.T) {
	a := newAPI(t)
	ana := a.register("Ana", "ana@example.com")
	clara := a.register("Clara", "clara@example.com")

	eventID := a.createEvent(ana, gin.H{
		"name":       "Supper Club",
		"date":       "2026-09-12",
		"start_time": "20:00",
		"event_type": "private_application",
	})

	w := a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/co-organizers/invites", eventID), ana, gin.H{
		"email": "clara@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invite: status %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Token string `json:"token"`
	}
	decode(t, w, &created)
	if created.Token == "" {
		t.Fatalf("invite response missing token: %s", w.Body.String())
	}

	// The landing page lookup is public.
	w = a.do(http.MethodGet, "/api/invites/"+created.Token, "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("invite lookup: status %d: %s", w.Code, w.Body.String())
	}

	w = a.do(http.MethodPost, "/api/invites/"+created.Token+"/accept", clara, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept invite: status %d: %s", w.Code, w.Body.String())
	}

	// The new co-organizer can now run approvals and list the roster.
	w = a.do(http.MethodGet, fmt.Sprintf("/api/events/%d/co-organizers", eventID), clara, nil)
	if w.Code != http.StatusOK {
		t.Errorf("co-organizer roster: status %d: %s", w.Code, w.Body.String())
	}

	// Chat opens for a co-organizer without a participation.
	w = a.do(http.MethodGet, fmt.Sprintf("/api/events/%d/chat", eventID), clara, nil)
	if w.Code != http.StatusOK {
		t.Errorf("co-organizer chat: status %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/api/notifications", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list: status %d, want 401", w.Code)
	}

	w = a.do(http.MethodGet, "/api/events/999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing event: status %d, want 404", w.Code)
	}

	w = a.do(http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health: status %d, want 200", w.Code)
	}
}
