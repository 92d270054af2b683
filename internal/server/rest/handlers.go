package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/money"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/dmitrijs2005/truekicks/internal/server/services"
	"github.com/gin-gonic/gin"
)

const livenessText = "TrueKicks server is running! 🚀"

type handlers struct {
	catalog CatalogService
	users   UserService
	orders  OrderService
}

func (h *handlers) root(c *gin.Context) {
	c.String(http.StatusOK, livenessText)
}

func (h *handlers) listTable(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.catalog.List(c.Request.Context(), table)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *handlers) categories(c *gin.Context) {
	items, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handlers) detail(c *gin.Context) {
	table := c.Param("table")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// no row matches; the table name is still checked
		id = -1
	}

	p, err := h.catalog.Detail(c.Request.Context(), table, id)
	switch {
	case errors.Is(err, common.ErrorInvalidTable):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid table"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, p)
	}
}

type credentials struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already registered!"})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful!", "user": user})
	}
}

func (h *handlers) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Wrong email or password!"})
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Wrong email or password!"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "user": user, "token": token})
	}
}

type orderRequest struct {
	RequestID  string          `json:"request_id"`
	UserID     json.RawMessage `json:"user_id"`
	FullName   string          `json:"full_name"`
	Address    string          `json:"address"`
	Phone      string          `json:"phone"`
	TotalPrice money.Money     `json:"total_price"`
	Items      json.RawMessage `json:"items"`
}

// leadingInt reads an optionally signed run of digits at the start of s,
// after surrounding whitespace, ignoring whatever follows it ("4", "4.7" and
// "4abc" all give 4).
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseUserID accepts user_id as a JSON number or a numeric string.
func parseUserID(raw json.RawMessage) (int64, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return leadingInt(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return leadingInt(n.String())
}

var errMissingOrderData = gin.H{"error": "Missing required order data."}

func (h *handlers) placeOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errMissingOrderData)
		return
	}

	userID, ok := parseUserID(req.UserID)
	if !ok {
		c.JSON(http.StatusBadRequest, errMissingOrderData)
		return
	}
	if authID, authed := currentUserID(c); authed && authID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot place orders for another user"})
		return
	}

	order, err := h.orders.Place(c.Request.Context(), services.OrderInput{
		UserID:     userID,
		FullName:   req.FullName,
		Address:    req.Address,
		Phone:      req.Phone,
		TotalPrice: req.TotalPrice,
		Items:      req.Items,
		RequestID:  req.RequestID,
	})
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, errMissingOrderData)
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB Insert Failed: " + err.Error()})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully!", "order": []*models.Order{order}})
	}
}

func (h *handlers) userOrders(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	authID, _ := currentUserID(c)
	if authID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot view orders of another user"})
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}
