package photos

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientListAssets(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/assets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"assets": []map[string]any{
				{"id": "a1", "creationTime": 1748770200000, "mediaType": "photo"},
				{"id": "a2", "creationTime": 1748773800000, "mediaType": "photo"},
			},
			"nextCursor": "c2",
			"hasMore":    true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	r := TimeRange{Start: time.UnixMilli(1000), End: time.UnixMilli(2000)}
	page, err := c.ListAssets(context.Background(), r, 50, "c1")
	if err != nil {
		t.Fatalf("ListAssets error: %v", err)
	}

	if gotQuery["start"] != "1000" || gotQuery["end"] != "2000" {
		t.Fatalf("unexpected window params: %v", gotQuery)
	}
	if gotQuery["pageSize"] != "50" || gotQuery["cursor"] != "c1" || gotQuery["mediaType"] != "photo" {
		t.Fatalf("unexpected params: %v", gotQuery)
	}

	if len(page.Assets) != 2 || !page.HasMore || page.NextCursor != "c2" {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Assets[0].AssetID != "a1" {
		t.Fatalf("unexpected first asset %+v", page.Assets[0])
	}
	if !page.Assets[0].CreationTime.Equal(time.UnixMilli(1748770200000)) {
		t.Fatalf("creation time not decoded from epoch millis: %v", page.Assets[0].CreationTime)
	}
}

func TestClientListAssetsOmitsEmptyCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("cursor") {
			t.Error("cursor param sent for first page")
		}
		json.NewEncoder(w).Encode(map[string]any{"assets": []any{}, "hasMore": false})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.ListAssets(context.Background(), TimeRange{}, 10, ""); err != nil {
		t.Fatalf("ListAssets error: %v", err)
	}
}

func TestClientAssetInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/assets/a1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"a1","creationTime":1748770200000,"location":{"latitude":52.52,"longitude":13.4}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	info, err := c.AssetInfo(context.Background(), "a1")
	if err != nil {
		t.Fatalf("AssetInfo error: %v", err)
	}
	if info.Location == nil {
		t.Fatal("expected location")
	}
	if info.Location.Latitude.Float() != 52.52 || info.Location.Longitude.Float() != 13.4 {
		t.Fatalf("unexpected coordinates %+v", info.Location)
	}
}

func TestClientAssetInfoStringCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"a1","creationTime":0,"location":{"latitude":"52.52","longitude":"13.4"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	info, err := c.AssetInfo(context.Background(), "a1")
	if err != nil {
		t.Fatalf("AssetInfo error: %v", err)
	}
	if info.Location.Latitude.Float() != 52.52 || info.Location.Longitude.Float() != 13.4 {
		t.Fatalf("string coordinates not decoded: %+v", info.Location)
	}
}

func TestClientAssetInfoGarbageCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"a1","creationTime":0,"location":{"latitude":"not-a-number","longitude":"13.4"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	info, err := c.AssetInfo(context.Background(), "a1")
	if err != nil {
		t.Fatalf("AssetInfo error: %v", err)
	}
	if !math.IsNaN(info.Location.Latitude.Float()) {
		t.Fatalf("expected NaN for garbage latitude, got %v", info.Location.Latitude)
	}
}

func TestClientAccessLevel(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"all", `{"accessPrivileges":"all"}`, AccessAll},
		{"limited", `{"accessPrivileges":"limited"}`, AccessLimited},
		{"missing defaults to none", `{}`, AccessNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewClient(srv.URL).AccessLevel(context.Background())
			if err != nil {
				t.Fatalf("AccessLevel error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClientNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.ListAssets(context.Background(), TimeRange{}, 10, ""); err == nil {
		t.Fatal("expected error on 500")
	}
	if _, err := c.AssetInfo(context.Background(), "a1"); err == nil {
		t.Fatal("expected error on 500")
	}
	if _, err := c.AccessLevel(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}
