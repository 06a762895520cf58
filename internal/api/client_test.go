package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/altinukshini/ci-downloader/internal/model"
)

func TestSearchPath(t *testing.T) {
	tests := []struct {
		name  string
		query model.SearchQuery
		want  string
	}{
		{
			name:  "plain",
			query: model.SearchQuery{Device: "austin", CommitHash: "abc123"},
			want:  "/api/search/prop?CI_JOB_NAME=austin&CI_COMMIT_SHA=abc123",
		},
		{
			name:  "escapes reserved characters",
			query: model.SearchQuery{Device: "tv build", CommitHash: "a&b"},
			want:  "/api/search/prop?CI_JOB_NAME=tv+build&CI_COMMIT_SHA=a%26b",
		},
		{
			name:  "brand filter is not sent",
			query: model.SearchQuery{Device: "reno", CommitHash: "ff", BrandFilter: "tcl-tcl"},
			want:  "/api/search/prop?CI_JOB_NAME=reno&CI_COMMIT_SHA=ff",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchPath(tt.query); got != tt.want {
				t.Errorf("SearchPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://host/artifactory/")
	got := c.SearchURL(model.SearchQuery{Device: "d", CommitHash: "c"})
	want := "http://host/artifactory/api/search/prop?CI_JOB_NAME=d&CI_COMMIT_SHA=c"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}

func TestSearch(t *testing.T) {
	var gotQuery, gotAccept, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"uri":"http://x/a","size":1},{"uri":"http://x/b"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	resp, err := c.Search(context.Background(), model.SearchQuery{Device: "austin", CommitHash: "abc"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[0].URI != "http://x/a" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
	if gotQuery != "CI_JOB_NAME=austin&CI_COMMIT_SHA=abc" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestSearchStatusError(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
	}{
		{name: "not found", code: http.StatusNotFound, body: "nope"},
		{name: "created", code: http.StatusCreated, body: `{"results":[{"uri":"http://x/1"}]}`},
		{name: "no content", code: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
			_, err := c.Search(context.Background(), model.SearchQuery{Device: "a", CommitHash: "b"})
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %d, want %d", se.Code, tt.code)
			}
			want := fmt.Sprintf("Status Code: %d", tt.code)
			if err.Error() != want {
				t.Errorf("error = %q, want %q", err, want)
			}
		})
	}
}

func TestSearchNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.Search(context.Background(), model.SearchQuery{Device: "a", CommitHash: "b"})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestGetStorageInfo(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantURI string
		wantRaw string
	}{
		{
			name:    "json document",
			body:    `{"downloadUri":"http://x/build-45.zip","size":"10"}`,
			wantURI: "http://x/build-45.zip",
		},
		{
			name: "json without downloadUri",
			body: `{"path":"/a"}`,
		},
		{
			name:    "plain text",
			body:    "http://x/build-45.zip\n",
			wantRaw: "http://x/build-45.zip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("http://unused", WithHTTPClient(srv.Client()))
			info, err := c.GetStorageInfo(context.Background(), srv.URL+"/api/storage/x")
			if err != nil {
				t.Fatalf("GetStorageInfo: %v", err)
			}
			if info.DownloadURI != tt.wantURI {
				t.Errorf("DownloadURI = %q, want %q", info.DownloadURI, tt.wantURI)
			}
			if info.RawText != tt.wantRaw {
				t.Errorf("RawText = %q, want %q", info.RawText, tt.wantRaw)
			}
		})
	}
}

func TestGetStorageInfoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	if _, err := c.GetStorageInfo(context.Background(), url+"/x"); err == nil {
		t.Fatal("expected error from closed server")
	}
}

func TestDebugTraceWritesExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithDebugTrace(&buf))
	if _, err := c.Search(context.Background(), model.SearchQuery{Device: "a", CommitHash: "b"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !strings.Contains(buf.String(), "CI_JOB_NAME=a") {
		t.Errorf("trace should mention the request URL, got:\n%s", buf.String())
	}
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	c := NewClient("https://host/artifactory/")
	if c.BaseURL() != "https://host/artifactory" {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}
	want := "https://host/artifactory/api/search/prop?CI_JOB_NAME=a&CI_COMMIT_SHA=b"
	if got := c.SearchURL(model.SearchQuery{Device: "a", CommitHash: "b"}); got != want {
		t.Errorf("SearchURL = %q, want %q", got, want)
	}
}
