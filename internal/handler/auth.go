package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/config"
	"github.com/iliyamo/video-rental-store/internal/repository"
	"github.com/iliyamo/video-rental-store/internal/utils"
)

// Account roles carried in JWT claims and the refresh_tokens table.
const (
	RoleCustomer = "CUSTOMER"
	RoleOwner    = "OWNER"
)

// AuthHandler owns registration, login and the refresh-token lifecycle.
// Customers authenticate by email, staff by username; both end up with
// the same token pair, distinguished only by the role claim.
type AuthHandler struct {
	Customers *repository.CustomerRepo
	Staff     *repository.StaffRepo
	Tokens    *repository.TokenRepo
	Cfg       config.Config
}

// NewAuthHandler wires the auth endpoints to their repositories.
func NewAuthHandler(customers *repository.CustomerRepo, staff *repository.StaffRepo, tokens *repository.TokenRepo, cfg config.Config) *AuthHandler {
	return &AuthHandler{Customers: customers, Staff: staff, Tokens: tokens, Cfg: cfg}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=45"`
	LastName  string `json:"last_name" validate:"required,max=45"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	AccessExp    int64  `json:"access_expires_at"`
	RefreshToken string `json:"refresh_token,omitempty"`
	RefreshExp   int64  `json:"refresh_expires_at,omitempty"`
	Role         string `json:"role"`
}

// Register creates a customer account. Staff accounts are provisioned
// out of band, never through the public API.
func (h *AuthHandler) Register(c echo.Context) error {
	var body registerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id, err := h.Customers.Create(ctx, h.Cfg.StoreID, body.FirstName, body.LastName, body.Email, body.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		c.Logger().Errorf("register: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not register"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"customer_id": id})
}

// Login authenticates either a customer (by email) or a staff member
// (by username) and hands back an access/refresh token pair. The same
// generic 401 covers unknown accounts and wrong passwords.
func (h *AuthHandler) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if body.Email == "" && body.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or username is required"})
	}

	ctx := c.Request().Context()
	var (
		accountID uint64
		role      string
		hash      string
		active    bool
	)
	if body.Username != "" {
		st, err := h.Staff.GetByUsername(ctx, body.Username)
		if err != nil {
			if errors.Is(err, repository.ErrStaffNotFound) {
				return unauthorized(c)
			}
			c.Logger().Errorf("login staff: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		accountID, role, hash, active = st.ID, RoleOwner, st.PasswordHash, st.Active
	} else {
		cust, err := h.Customers.GetByEmail(ctx, body.Email)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return unauthorized(c)
			}
			c.Logger().Errorf("login customer: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		accountID, role, hash, active = cust.ID, RoleCustomer, cust.PasswordHash, cust.Active
	}

	if !active {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is inactive"})
	}
	if !utils.VerifyPassword(hash, body.Password) {
		return unauthorized(c)
	}

	resp, err := h.issueTokens(c, accountID, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh access/refresh pair is issued, so each refresh token is single
// use.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var body refreshRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := c.Request().Context()
	tokenHash := utils.HashRefreshRaw(body.RefreshToken)
	accountID, role, err := h.Tokens.ValidateRefresh(ctx, tokenHash)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.Tokens.RevokeByHash(ctx, tokenHash); err != nil {
		c.Logger().Errorf("refresh revoke: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh failed"})
	}

	resp, err := h.issueTokens(c, accountID, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// RefreshAccess issues a new access token only, leaving the refresh
// token valid. Used by clients that refresh proactively.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	var body refreshRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := c.Request().Context()
	accountID, role, err := h.Tokens.ValidateRefresh(ctx, utils.HashRefreshRaw(body.RefreshToken))
	if err != nil {
		return unauthorized(c)
	}

	at, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		c.Logger().Errorf("refresh-access sign: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh failed"})
	}
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: at.Token,
		AccessExp:   at.Exp.Unix(),
		Role:        role,
	})
}

// Logout revokes the presented refresh token. The access token simply
// expires; there is no server-side denylist for it.
func (h *AuthHandler) Logout(c echo.Context) error {
	var body refreshRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(body.RefreshToken)); err != nil {
		c.Logger().Errorf("logout: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated account's profile based on the role in
// the token.
func (h *AuthHandler) Me(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	role, _ := c.Get("role").(string)

	ctx := c.Request().Context()
	switch role {
	case RoleOwner:
		st, err := h.Staff.GetByID(ctx, accountID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"role": role, "staff": st})
	case RoleCustomer:
		cust, err := h.Customers.GetByID(ctx, accountID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"role": role, "customer": cust})
	default:
		return unauthorized(c)
	}
}

// issueTokens signs an access token and persists a new refresh token.
func (h *AuthHandler) issueTokens(c echo.Context, accountID uint64, role string) (tokenResponse, error) {
	at, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		c.Logger().Errorf("sign access token: %v", err)
		return tokenResponse{}, err
	}
	rt, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		c.Logger().Errorf("create refresh token: %v", err)
		return tokenResponse{}, err
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), accountID, role, utils.HashRefreshRaw(rt.Raw), rt.Exp); err != nil {
		c.Logger().Errorf("store refresh token: %v", err)
		return tokenResponse{}, err
	}
	return tokenResponse{
		AccessToken:  at.Token,
		AccessExp:    at.Exp.Unix(),
		RefreshToken: rt.Raw,
		RefreshExp:   rt.Exp.Unix(),
		Role:         role,
	}, nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
}
