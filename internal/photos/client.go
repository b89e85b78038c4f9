package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a companion photo-library agent over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type wireAsset struct {
	ID           string `json:"id"`
	CreationTime int64  `json:"creationTime"`
	MediaType    string `json:"mediaType"`
}

type wireListPage struct {
	Assets     []wireAsset `json:"assets"`
	NextCursor string      `json:"nextCursor"`
	HasMore    bool        `json:"hasMore"`
}

type wireAssetInfo struct {
	ID           string    `json:"id"`
	Location     *Location `json:"location"`
	CreationTime int64     `json:"creationTime"`
}

type wireAccess struct {
	AccessPrivileges string `json:"accessPrivileges"`
}

func (c *Client) ListAssets(ctx context.Context, r TimeRange, pageSize int, cursor string) (*ListPage, error) {
	q := url.Values{}
	q.Set("start", strconv.FormatInt(r.Start.UnixMilli(), 10))
	q.Set("end", strconv.FormatInt(r.End.UnixMilli(), 10))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("mediaType", MediaPhoto)
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var out wireListPage
	if err := c.getJSON(ctx, "/v1/assets?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	page := &ListPage{NextCursor: out.NextCursor, HasMore: out.HasMore}
	for _, a := range out.Assets {
		page.Assets = append(page.Assets, AssetRef{
			AssetID:      a.ID,
			CreationTime: time.UnixMilli(a.CreationTime),
			MediaType:    a.MediaType,
		})
	}
	return page, nil
}

func (c *Client) AssetInfo(ctx context.Context, assetID string) (*AssetInfo, error) {
	var out wireAssetInfo
	if err := c.getJSON(ctx, "/v1/assets/"+url.PathEscape(assetID), &out); err != nil {
		return nil, fmt.Errorf("asset info %s: %w", assetID, err)
	}
	return &AssetInfo{
		AssetID:      out.ID,
		Location:     out.Location,
		CreationTime: time.UnixMilli(out.CreationTime),
	}, nil
}

func (c *Client) AccessLevel(ctx context.Context) (string, error) {
	var out wireAccess
	if err := c.getJSON(ctx, "/v1/access", &out); err != nil {
		return "", fmt.Errorf("access level: %w", err)
	}
	if out.AccessPrivileges == "" {
		return AccessNone, nil
	}
	return out.AccessPrivileges, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
