package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"playbox/errs"
	"playbox/models"
	"playbox/validators"
)

// Route paths relative to the base URL.
const (
	RouteAllProducts        = "products/getAllProducts"
	RouteCreateUser         = "users/createuser"
	RouteLogIn              = "users/logIn"
	RouteLogin              = "users/login"
	RouteUpdateUser         = "users/updateUser"
	RouteLogout             = "users/logout"
	RouteCreateProduct      = "/createProduct"
	RouteProductsByCategory = "/getProductsByCategory/"
)

// Reply is the loosely typed answer of the user routes.
type Reply struct {
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

func decodeReply(raw json.RawMessage) *Reply {
	r := &Reply{Raw: raw}
	_ = json.Unmarshal(raw, r)
	return r
}

func parseError(route string, err error) *Error {
	return &Error{
		Message: "unexpected response shape from " + route + ": " + err.Error(),
		Kind:    errs.KindParse,
		Err:     err,
		Details: Details{Route: route},
	}
}

func (c *Client) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	raw, err := c.Call(ctx, RouteAllProducts, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var list models.ProductList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, parseError(RouteAllProducts, err)
	}
	if list.Products == nil {
		list.Products = []models.Product{}
	}
	return list.Products, nil
}

func (c *Client) CreateUser(ctx context.Context, req models.SignUpRequest) (*Reply, error) {
	raw, err := c.Call(ctx, RouteCreateUser, http.MethodPost, req)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw), nil
}

// LogIn posts to users/logIn, an alternate spelling the remote server keeps.
func (c *Client) LogIn(ctx context.Context, creds models.Credentials) (*Reply, error) {
	raw, err := c.Call(ctx, RouteLogIn, http.MethodPost, creds)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw), nil
}

// Login posts to users/login, the route the sign-in screen uses.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*Reply, error) {
	raw, err := c.Call(ctx, RouteLogin, http.MethodPost, creds)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw), nil
}

func (c *Client) UpdateUser(ctx context.Context, update models.ProfileUpdate) (*Reply, error) {
	raw, err := c.Call(ctx, RouteUpdateUser, http.MethodPost, update)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw), nil
}

func (c *Client) Logout(ctx context.Context) (*Reply, error) {
	raw, err := c.Call(ctx, RouteLogout, http.MethodPost, nil)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw), nil
}

// CreateProduct validates p locally and only then posts it.
func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*Reply, error) {
	if err := validators.ValidateProduct(p); err != nil {
		return nil, err
	}
	raw, err := c.Call(ctx, RouteCreateProduct, http.MethodPost, p)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw), nil
}

// GetProductsByCategory accepts either a {products: [...]} envelope or a bare list.
func (c *Client) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, errs.New("api.GetProductsByCategory", errs.KindValidation, "category is required")
	}
	route := RouteProductsByCategory + url.PathEscape(category)
	raw, err := c.Call(ctx, route, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}
	var list models.ProductList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, parseError(route, err)
	}
	if list.Products == nil {
		list.Products = []models.Product{}
	}
	return list.Products, nil
}
