package clubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

func New(cfg Config, httpClient *http.Client) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(time.Duration(cfg.Every)), cfg.Burst),
	}
}

// Client is a thin typed wrapper around the club management REST API. It holds
// no state besides the rate limiter; the bearer token is passed per call
// because it belongs to the viewer's session, not to the process.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func (c *Client) do(ctx context.Context, method string, path string, token string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = buf
	}

	rq, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		rq.Header.Set("Content-Type", "application/json")
	}
	rq.Header.Set("Accept", "application/json")
	if token != "" {
		rq.Header.Set("Authorization", "Bearer "+token)
	}

	rs, err := c.httpClient.Do(rq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer rs.Body.Close()

	if err = checkStatus(rs); err != nil {
		return err
	}

	if out != nil {
		if err = json.NewDecoder(rs.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func checkStatus(rs *http.Response) error {
	switch {
	case rs.StatusCode == http.StatusUnauthorized || rs.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case rs.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case rs.StatusCode >= http.StatusBadRequest:
		data, _ := io.ReadAll(rs.Body)
		return fmt.Errorf("request failed with status code: %d, response: %s", rs.StatusCode, data)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username string, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login/", "", map[string]string{
		"username": username,
		"password": password,
	}, &resp); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, username string, email string, password string) error {
	if err := c.do(ctx, http.MethodPost, "/api/register/", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	return nil
}

func (c *Client) GetMe(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/me/", token, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get own profile: %w", err)
	}
	return &user, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, patch MePatch) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/api/me/", token, patch, &user); err != nil {
		return nil, fmt.Errorf("failed to update own profile: %w", err)
	}
	return &user, nil
}

func (c *Client) GetClubs(ctx context.Context, token string) ([]Club, error) {
	var clubs []Club
	if err := c.do(ctx, http.MethodGet, "/api/clubs/", token, nil, &clubs); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get clubs: %w", err)
	}
	return clubs, nil
}

// CreateClub submits the club draft as a multipart form because the API
// accepts an optional image alongside the text fields.
func (c *Client) CreateClub(ctx context.Context, token string, draft ClubDraft, image io.Reader, imageName string) (*Club, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if err := mw.WriteField("name", draft.Name); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("description", draft.Description); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("max_member", strconv.Itoa(draft.MaxMember)); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			return nil, fmt.Errorf("failed to create image form file: %w", err)
		}
		if _, err = io.Copy(fw, image); err != nil {
			return nil, fmt.Errorf("failed to copy image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/clubs/", buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	rq.Header.Set("Content-Type", mw.FormDataContentType())
	rq.Header.Set("Accept", "application/json")
	rq.Header.Set("Authorization", "Bearer "+token)

	rs, err := c.httpClient.Do(rq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer rs.Body.Close()

	if err = checkStatus(rs); err != nil {
		return nil, err
	}

	var club Club
	if err = json.NewDecoder(rs.Body).Decode(&club); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &club, nil
}

func (c *Client) GetClub(ctx context.Context, token string, clubID int) (*Club, error) {
	var club Club
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/clubs/%d/", clubID), token, nil, &club); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return &club, nil
}

func (c *Client) UpdateClub(ctx context.Context, token string, clubID int, patch ClubPatch) (*Club, error) {
	var club Club
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/clubs/%d/", clubID), token, patch, &club); err != nil {
		return nil, fmt.Errorf("failed to update club: %w", err)
	}
	return &club, nil
}

func (c *Client) JoinClub(ctx context.Context, token string, clubID int) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/clubs/%d/join/", clubID), token, nil, nil); err != nil {
		return fmt.Errorf("failed to join club: %w", err)
	}
	return nil
}

// ApproveClub requests an admin-only club status transition. Valid actions are
// approve, reject, suspend and disband.
func (c *Client) ApproveClub(ctx context.Context, token string, clubID int, action string) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/clubs/%d/approve/", clubID), token, map[string]string{
		"action": action,
	}, nil); err != nil {
		return fmt.Errorf("failed to %s club: %w", action, err)
	}
	return nil
}

func (c *Client) GetMyClubs(ctx context.Context, token string) ([]Club, error) {
	var clubs []Club
	if err := c.do(ctx, http.MethodGet, "/api/myclubs/", token, nil, &clubs); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get my clubs: %w", err)
	}
	return clubs, nil
}

func (c *Client) UpdateMembership(ctx context.Context, token string, membershipID int, patch MembershipPatch) error {
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/memberships/%d/", membershipID), token, patch, nil); err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	return nil
}

// DeleteMembership withdraws a pending request or leaves a joined club.
func (c *Client) DeleteMembership(ctx context.Context, token string, membershipID int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/memberships/%d/", membershipID), token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

func (c *Client) GetEvents(ctx context.Context, token string, clubID int) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/clubs/%d/events/", clubID), token, nil, &events); err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, token string, clubID int, draft EventDraft) (*Event, error) {
	var event Event
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/clubs/%d/events/", clubID), token, draft, &event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (c *Client) GetEvent(ctx context.Context, token string, clubID int, eventID int) (*Event, error) {
	var event Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/clubs/%d/events/%d/", clubID, eventID), token, nil, &event); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, token string, clubID int, eventID int, draft EventDraft) (*Event, error) {
	var event Event
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/clubs/%d/events/%d/", clubID, eventID), token, draft, &event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &event, nil
}

func (c *Client) JoinEvent(ctx context.Context, token string, eventID int, paymentMethod string) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/events/%d/join/", eventID), token, map[string]string{
		"payment_method": paymentMethod,
	}, nil); err != nil {
		return fmt.Errorf("failed to join event: %w", err)
	}
	return nil
}

func (c *Client) UpdateParticipant(ctx context.Context, token string, eventID int, participantID int, paymentStatus string) error {
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/events/%d/participants/%d/", eventID, participantID), token, map[string]string{
		"payment_status": paymentStatus,
	}, nil); err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return nil
}
