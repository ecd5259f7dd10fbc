// ABOUTME: Authenticated HTTP client for the Coros Training Hub API.
// ABOUTME: Handles login, the response envelope, and per-call auth headers.
package coros

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is the production Training Hub API endpoint.
	DefaultBaseURL = "https://teamapi.coros.com"

	loginPath    = "/account/login"
	queryPath    = "/activity/query"
	detailPath   = "/activity/detail/query"
	downloadPath = "/activity/download"

	tokenHeader = "Accesstoken"

	// accountTypeEmail is the account type for email/password login.
	accountTypeEmail = 2

	// resultOK is the envelope result code for a successful API call.
	resultOK = "0000"

	// MaxPageSize is the largest page the activity listing endpoint accepts.
	MaxPageSize = 200
)

// Client is an authenticated session against the Coros API. The access
// token is written once by Login and read by every later call.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	userID  string
}

// NewClient creates a Client for the given API base URL. An empty
// baseURL selects the production endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the outer structure of every Coros API response.
type envelope struct {
	Result  string          `json:"result"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// loginResponse is the data portion of a successful login.
type loginResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
}

// ActivityRef is one entry of the activity listing: enough metadata to
// display the activity and to request its detail payload.
type ActivityRef struct {
	LabelID   string    `json:"labelId"`
	SportType SportType `json:"sportType"`
	Name      string    `json:"name"`
	StartTime int64     `json:"startTime"`
	Distance  float64   `json:"distance"`
	TotalTime int       `json:"totalTime"`
}

// ActivityPage is one page of the activity listing.
type ActivityPage struct {
	Count    int           `json:"count"`
	DataList []ActivityRef `json:"dataList"`
}

// Detail holds the three raw fragments of an activity detail response.
// The fragments stay unparsed here; interpreting them is the mapper's job.
type Detail struct {
	Summary       json.RawMessage `json:"summary"`
	FrequencyList json.RawMessage `json:"frequencyList"`
	LapList       json.RawMessage `json:"lapList"`
}

// downloadResponse is the data portion of a file export response.
type downloadResponse struct {
	FileURL string `json:"fileUrl"`
}

// Authenticated reports whether a login has succeeded on this Client.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// UserID returns the Coros user ID of the logged-in account.
func (c *Client) UserID() string {
	return c.userID
}

// Login exchanges credentials for an access token. The Coros API takes
// the MD5 hex digest of the password, not the password itself. Any
// failure (bad credentials, transport error, malformed response) is
// reported as an *AuthError; no token is stored in that case.
func (c *Client) Login(ctx context.Context, account, password string) error {
	sum := md5.Sum([]byte(password))
	body, err := json.Marshal(map[string]any{
		"account":     account,
		"accountType": accountTypeEmail,
		"pwd":         hex.EncodeToString(sum[:]),
	})
	if err != nil {
		return &AuthError{Reason: "encode request", Err: err}
	}

	reqURL := c.baseURL + loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return &AuthError{Reason: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &AuthError{Reason: "connect", Err: &NetworkError{URL: reqURL, Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return &AuthError{Reason: "server rejected login", Err: newAPIError(resp.StatusCode, string(raw), reqURL)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &AuthError{Reason: "decode response", Err: err}
	}
	if env.Result != "" && env.Result != resultOK {
		return &AuthError{Reason: fmt.Sprintf("invalid credentials (%s: %s)", env.Result, env.Message)}
	}

	var data loginResponse
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
		return &AuthError{Reason: "no access token in response", Err: err}
	}

	c.token = data.AccessToken
	c.userID = data.UserID
	log.Debug("logged in to coros", "user_id", data.UserID)
	return nil
}

// Get issues an authenticated GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, out)
}

// Post issues an authenticated POST. The Coros API passes parameters in
// the query string even on POST endpoints.
func (c *Client) Post(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(tokenHeader, c.token)

	log.Debug("coros request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, string(raw), reqURL)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response from %s: %w", reqURL, err)
	}
	if env.Result != "" && env.Result != resultOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Code:       env.Result,
			Body:       truncate(env.Message, maxErrorBody),
			URL:        reqURL,
		}
	}

	// Some endpoints legitimately omit the data section (for example an
	// unavailable file export); leave out zero-valued in that case.
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data from %s: %w", reqURL, err)
		}
	}
	return nil
}

// ListActivities fetches one page of the activity listing. modeList is a
// comma-separated sport type filter; empty means all sports. Entries are
// returned in the order the server listed them.
func (c *Client) ListActivities(ctx context.Context, pageNumber, size int, modeList string) (*ActivityPage, error) {
	params := url.Values{}
	params.Set("size", strconv.Itoa(size))
	params.Set("pageNumber", strconv.Itoa(pageNumber))
	params.Set("modeList", modeList)

	var page ActivityPage
	if err := c.Get(ctx, queryPath, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ActivityDetail fetches the raw detail payload for one activity. The
// screen dimensions are required by the endpoint; their values only
// affect chart rendering hints, not the data.
func (c *Client) ActivityDetail(ctx context.Context, ref ActivityRef) (*Detail, error) {
	params := url.Values{}
	params.Set("labelId", ref.LabelID)
	params.Set("sportType", strconv.Itoa(int(ref.SportType)))
	params.Set("screenW", "944")
	params.Set("screenH", "1440")

	var detail Detail
	if err := c.Post(ctx, detailPath, params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RequestFileExport asks the server to produce a downloadable file for
// an activity. Not every format is available for every sport type; in
// that case the server omits the data section and ok is false.
func (c *Client) RequestFileExport(ctx context.Context, ref ActivityRef, fileType FileType) (fileURL string, ok bool, err error) {
	params := url.Values{}
	params.Set("labelId", ref.LabelID)
	params.Set("sportType", strconv.Itoa(int(ref.SportType)))
	params.Set("fileType", strconv.Itoa(int(fileType)))

	var data downloadResponse
	if err := c.Post(ctx, downloadPath, params, &data); err != nil {
		return "", false, err
	}
	if data.FileURL == "" {
		return "", false, nil
	}
	return data.FileURL, true, nil
}

// Download fetches the body of a previously exported file. The file URL
// points at a storage host, not the API, so no auth header is attached.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: fileURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, string(raw), fileURL)
	}
	return io.ReadAll(resp.Body)
}
