package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// linksPage builds a formatversion=2 links response body.
func linksPage(title string, links []string, plcontinue string) string {
	body := `{"query":{"pages":[{"pageid":1,"title":"` + title + `","links":[`
	for i, l := range links {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"ns":0,"title":"%s"}`, l)
	}
	body += `]}]}}`
	if plcontinue != "" {
		body = `{"continue":{"plcontinue":"` + plcontinue + `","continue":"||"},` + body[1:]
	}
	return body
}

func TestClient_Links(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("titles"); got != "Gabriela Mistral" {
			t.Errorf("titles param = %q, want %q", got, "Gabriela Mistral")
		}
		if got := r.URL.Query().Get("plnamespace"); got != "0" {
			t.Errorf("plnamespace param = %q, want %q", got, "0")
		}
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
		}
		fmt.Fprint(w, linksPage("Gabriela Mistral", []string{"Chile", "Pablo Neruda"}, ""))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	links, err := client.Links(context.Background(), "Gabriela Mistral", 0)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}

	want := []string{"Chile", "Pablo Neruda"}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("Links() = %v, want %v", links, want)
	}
}

func TestClient_Links_FollowsContinuation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("plcontinue") {
		case "":
			fmt.Fprint(w, linksPage("X", []string{"A", "B"}, "1|0|C"))
		case "1|0|C":
			fmt.Fprint(w, linksPage("X", []string{"C", "D"}, ""))
		default:
			t.Errorf("unexpected plcontinue %q", r.URL.Query().Get("plcontinue"))
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	links, err := client.Links(context.Background(), "X", 0)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}

	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("Links() = %v, want %v", links, want)
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
}

func TestClient_Links_LimitStopsEarly(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, linksPage("X", []string{"A", "B", "C"}, "1|0|D"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	links, err := client.Links(context.Background(), "X", 2)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}

	if !reflect.DeepEqual(links, []string{"A", "B"}) {
		t.Errorf("Links() = %v, want [A B]", links)
	}
	if calls != 1 {
		t.Errorf("made %d requests, want 1 (limit reached in first batch)", calls)
	}
}

func TestClient_Links_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "missing page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"query":{"pages":[{"title":"Nobody","missing":true}]}}`)
			},
			check: func(t *testing.T, err error) {
				if !IsNotFound(err) {
					t.Errorf("IsNotFound(%v) = false, want true", err)
				}
			},
		},
		{
			name: "invalid title",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"query":{"pages":[{"title":"<bad>","invalid":true}]}}`)
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				if !IsRateLimited(err) {
					t.Errorf("IsRateLimited(%v) = false, want true", err)
				}
			},
		},
		{
			name: "api error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"error":{"code":"maxlag","info":"Waiting for replication"}}`)
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *APIError", err)
				}
				if apiErr.Code != "maxlag" {
					t.Errorf("Code = %q, want %q", apiErr.Code, "maxlag")
				}
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"query":`)
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrInvalidResponse) {
					t.Errorf("error = %v, want ErrInvalidResponse", err)
				}
			},
		},
		{
			name: "empty pages array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"query":{"pages":[]}}`)
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrInvalidResponse) {
					t.Errorf("error = %v, want ErrInvalidResponse", err)
				}
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *APIError", err)
				}
				if apiErr.StatusCode != http.StatusInternalServerError {
					t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(WithBaseURL(server.URL))
			_, err := client.Links(context.Background(), "Nobody", 0)
			if err == nil {
				t.Fatal("Links() error = nil, want error")
			}
			tt.check(t, err)
		})
	}
}

func TestClient_Links_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, linksPage("X", []string{"A"}, ""))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.Links(ctx, "X", 0); err == nil {
		t.Error("Links() with cancelled context should fail")
	}
}

func TestClient_Links_PageWithNoLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{"pageid":1,"title":"Stub"}]}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	links, err := client.Links(context.Background(), "Stub", 0)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Links() = %v, want empty", links)
	}
}

func TestAPIURL(t *testing.T) {
	if got := APIURL("es"); got != "https://es.wikipedia.org/w/api.php" {
		t.Errorf("APIURL(es) = %q", got)
	}
}
