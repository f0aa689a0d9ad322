package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/person"
)

// newTestServer builds a server over {Ana, Bruno, Clara} where Ana links
// to Bruno and Clara links to Ana.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	table, err := person.NewTable([]person.Person{
		{Name: "Ana", Gender: "Female", Occupation: "Writer"},
		{Name: "Bruno", Gender: "Male", Occupation: "Poet"},
		{Name: "Clara", Gender: "Female", Occupation: "Writer"},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	outgoing := network.NewOutgoing(map[string][]string{
		"Ana":   {"Bruno"},
		"Bruno": {},
		"Clara": {"Ana"},
	})

	server, err := NewServer(DefaultConfig(), table, network.Build(table, outgoing))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Wikipedia Person Network") {
		t.Error("page missing title")
	}
	if !strings.Contains(body, "Ana") {
		t.Error("page missing embedded network data")
	}
}

func TestHandleNetwork(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/network")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/network status = %d, want 200", rec.Code)
	}

	var resp NetworkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(resp.Nodes) != 3 {
		t.Errorf("got %d nodes, want 3", len(resp.Nodes))
	}
	if len(resp.Edges) != 2 {
		t.Errorf("got %d edges, want 2", len(resp.Edges))
	}
	if resp.Stats.Nodes != 3 || resp.Stats.Edges != 2 {
		t.Errorf("stats = %+v, want 3 nodes / 2 edges", resp.Stats)
	}
}

func TestHandleNetwork_Filters(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantNodes []string
	}{
		{
			name:      "no filters",
			query:     "",
			wantNodes: []string{"Ana", "Bruno", "Clara"},
		},
		{
			name:      "gender filter",
			query:     "?gender=Female",
			wantNodes: []string{"Ana", "Clara"},
		},
		{
			name:      "repeated gender filter",
			query:     "?gender=Female&gender=Male",
			wantNodes: []string{"Ana", "Bruno", "Clara"},
		},
		{
			name:      "search is case-insensitive substring",
			query:     "?search=BR",
			wantNodes: []string{"Bruno"},
		},
		{
			name:      "person focus keeps person and neighbors",
			query:     "?person=Bruno",
			wantNodes: []string{"Ana", "Bruno"},
		},
		{
			name:      "filters intersect",
			query:     "?person=Bruno&gender=Female",
			wantNodes: []string{"Ana"},
		},
		{
			name:      "gender absent from table matches nobody",
			query:     "?gender=Nonbinary",
			wantNodes: []string{},
		},
		{
			name:      "unknown person yields empty view",
			query:     "?person=Nobody",
			wantNodes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, server, "/api/network"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var resp NetworkResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}

			got := make([]string, 0, len(resp.Nodes))
			for _, n := range resp.Nodes {
				got = append(got, n.ID)
			}
			sort.Strings(got)

			if len(got) != len(tt.wantNodes) {
				t.Fatalf("got nodes %v, want %v", got, tt.wantNodes)
			}
			for i := range got {
				if got[i] != tt.wantNodes[i] {
					t.Fatalf("got nodes %v, want %v", got, tt.wantNodes)
				}
			}
		})
	}
}

func TestHandleNetwork_MetricsFromFullGraph(t *testing.T) {
	server := newTestServer(t)

	var full NetworkResponse
	if err := json.Unmarshal(get(t, server, "/api/network").Body.Bytes(), &full); err != nil {
		t.Fatalf("decoding full response: %v", err)
	}
	fullRank := make(map[string]float64)
	for _, n := range full.Nodes {
		fullRank[n.ID] = n.PageRank
	}

	var filtered NetworkResponse
	if err := json.Unmarshal(get(t, server, "/api/network?gender=Female").Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decoding filtered response: %v", err)
	}

	for _, n := range filtered.Nodes {
		if n.PageRank != fullRank[n.ID] {
			t.Errorf("node %s PageRank = %v, want full-graph %v", n.ID, n.PageRank, fullRank[n.ID])
		}
	}
}

func TestHandleNetwork_PositionsStableUnderFilter(t *testing.T) {
	server := newTestServer(t)

	var full, filtered NetworkResponse
	if err := json.Unmarshal(get(t, server, "/api/network").Body.Bytes(), &full); err != nil {
		t.Fatalf("decoding full response: %v", err)
	}
	if err := json.Unmarshal(get(t, server, "/api/network?gender=Female").Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decoding filtered response: %v", err)
	}

	fullPos := make(map[string][3]float64)
	for _, n := range full.Nodes {
		fullPos[n.ID] = [3]float64{n.X, n.Y, n.Z}
	}
	for _, n := range filtered.Nodes {
		if got := [3]float64{n.X, n.Y, n.Z}; got != fullPos[n.ID] {
			t.Errorf("node %s moved under filtering: %v vs %v", n.ID, got, fullPos[n.ID])
		}
	}
}

func TestHandlePeople(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/people")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/people status = %d, want 200", rec.Code)
	}

	var people []person.Person
	if err := json.Unmarshal(rec.Body.Bytes(), &people); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(people) != 3 {
		t.Fatalf("got %d people, want 3", len(people))
	}
	if people[0].Name != "Ana" || people[0].Gender != "Female" {
		t.Errorf("first person = %+v, want Ana/Female", people[0])
	}
	// Degrees are attached from the built graph
	if people[0].InDegree != 1 || people[0].OutDegree != 1 {
		t.Errorf("Ana degrees = %d/%d, want 1/1", people[0].InDegree, people[0].OutDegree)
	}
}

func TestHandleStats(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/stats status = %d, want 200", rec.Code)
	}

	var stats StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if stats.People != 3 {
		t.Errorf("People = %d, want 3", stats.People)
	}
	if stats.Edges != 2 {
		t.Errorf("Edges = %d, want 2", stats.Edges)
	}

	if len(stats.Genders) != 2 || stats.Genders[0].Value != "Female" || stats.Genders[0].Count != 2 {
		t.Errorf("Genders = %+v, want Female:2 first", stats.Genders)
	}
	if len(stats.Occupations) != 2 || stats.Occupations[0].Value != "Writer" || stats.Occupations[0].Count != 2 {
		t.Errorf("Occupations = %+v, want Writer:2 first", stats.Occupations)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/health status = %d, want 200", rec.Code)
	}

	var health map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("status = %q, want ok", health["status"])
	}
	if health["time"] == "" {
		t.Error("time missing from health response")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/network", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/network status = %d, want 405", rec.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/nope status = %d, want 404", rec.Code)
	}
}

func TestStartAndStop(t *testing.T) {
	server := newTestServer(t)
	server.config.ListenAddr = "127.0.0.1:0"
	server.server.Addr = server.config.ListenAddr

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after Stop()")
	}
}
