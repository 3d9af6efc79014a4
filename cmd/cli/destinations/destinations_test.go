package destinations

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/travel-tracker/cmd/cli/config"
	"github.com/spf13/cobra"
)

// loggedIn points the CLI at srv with a saved token.
func loggedIn(t *testing.T, srv *httptest.Server) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRAVEL_API_URL", srv.URL)
	if err := config.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "travel", SilenceUsage: true, SilenceErrors: true}
	InitDestinations(root)
	InitAudit(root)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const listBody = `[{"id":1,"name":"Paris","travelDate":"2025-06-01","notes":"x","ownerId":7,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"},
{"id":2,"name":"Kyoto","ownerId":7,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`

func TestList_TableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/destinations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		io.WriteString(w, listBody)
	}))
	defer srv.Close()
	loggedIn(t, srv)

	out, err := run(t, "destinations", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Paris") || !strings.Contains(out, "Kyoto") || !strings.Contains(out, "2025-06-01") {
		t.Fatalf("expected destinations in output, got: %s", out)
	}
}

func TestList_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, listBody)
	}))
	defer srv.Close()
	loggedIn(t, srv)

	out, err := run(t, "destinations", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, `"name": "Paris"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestList_NotLoggedIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := run(t, "destinations", "list")
	if !errors.Is(err, config.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestCreate_SendsOnlyGivenFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/destinations" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Lisbon" || body["travelDate"] != "2025-09-10" {
			t.Errorf("body: %v", body)
		}
		if _, ok := body["notes"]; ok {
			t.Error("notes sent without --notes")
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":9,"name":"Lisbon","ownerId":7}`)
	}))
	defer srv.Close()
	loggedIn(t, srv)

	out, err := run(t, "destinations", "create", "--name", "Lisbon", "--date", "2025-09-10")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "Created destination 9") {
		t.Errorf("output: %s", out)
	}
}

func TestUpdate_RequiresAField(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := run(t, "destinations", "update", "3"); err == nil {
		t.Error("expected error without fields")
	}
}

func TestDelete_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":"forbidden"}`)
	}))
	defer srv.Close()
	loggedIn(t, srv)

	_, err := run(t, "destinations", "delete", "5")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("expected 403 error, got %v", err)
	}
}

func TestAudit_PassesPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audit" || r.URL.Query().Get("limit") != "5" || r.URL.Query().Get("offset") != "10" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		io.WriteString(w, `[{"id":1,"user_id":7,"action":"create","resource_type":"destination","resource_id":1,"details":"Paris","created_at":"2025-01-01T00:00:00Z"}]`)
	}))
	defer srv.Close()
	loggedIn(t, srv)

	out, err := run(t, "audit", "--limit", "5", "--offset", "10")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !strings.Contains(out, "create") || !strings.Contains(out, "Paris") {
		t.Errorf("output: %s", out)
	}
}
