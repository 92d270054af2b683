package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/netx"
)

// HTTPClient talks JSON to the storefront REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type authPayload struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       models.ID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type authResponse struct {
	Message string      `json:"message"`
	User    userPayload `json:"user"`
	Token   string      `json:"token"`
}

type orderResponse struct {
	Message string         `json:"message"`
	Order   []models.Order `json:"order"`
}

func (c *HTTPClient) Fetch(ctx context.Context, path string) ([]byte, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *HTTPClient) Register(ctx context.Context, fullName, email string, password []byte) (*models.Identity, error) {
	var resp authResponse
	body := authPayload{FullName: fullName, Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/register", "", body, &resp); err != nil {
		return nil, err
	}
	return &models.Identity{ID: resp.User.ID, FullName: resp.User.FullName, Email: resp.User.Email}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.Identity, error) {
	var resp authResponse
	body := authPayload{Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &models.Identity{ID: resp.User.ID, FullName: resp.User.FullName, Email: resp.User.Email, Token: resp.Token}, nil
}

func (c *HTTPClient) PlaceOrder(ctx context.Context, token string, req models.OrderRequest) (*models.Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Order) == 0 {
		return nil, fmt.Errorf("%w: empty order in response", ErrServer)
	}
	return &resp.Order[0], nil
}

func (c *HTTPClient) Orders(ctx context.Context, token string, userID models.ID) ([]models.Order, error) {
	var orders []models.Order
	path := "/api/orders/user/" + url.PathEscape(userID.String())
	if err := c.do(ctx, http.MethodGet, path, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	header := http.Header{}
	if token != "" {
		header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, header, body, out)
	return mapError(err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if !errors.As(err, &se) {
		if errors.Is(err, netx.ErrDecode) {
			return fmt.Errorf("%w: %v", ErrServer, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, se.Message)
	case se.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, se.Message)
	case se.StatusCode >= 400 && se.StatusCode < 500:
		return fmt.Errorf("%w: %s", ErrRejected, se.Message)
	default:
		return fmt.Errorf("%w: %s", ErrServer, se.Error())
	}
}
