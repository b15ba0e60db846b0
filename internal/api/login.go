package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mouldsite/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	demoPassword = "demo123"
	demoIssuer   = "mouldsite-demo"
	loginHint    = "Use admin@mouldrestoration.com.au / demo123 for admin access"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

var demoUsers = map[string]User{
	"admin@mouldrestoration.com.au": {
		ID:        "admin-001",
		Email:     "admin@mouldrestoration.com.au",
		Name:      "Admin User",
		Role:      "admin",
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	},
	"james@mouldrestoration.com.au": {
		ID:        "tech-001",
		Email:     "james@mouldrestoration.com.au",
		Name:      "James Wilson",
		Role:      "technician",
		CreatedAt: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	},
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// DemoClaims go into the demo token. Nothing in this service verifies it.
type DemoClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// HandleLogin handles POST /api/auth/login against the two demo accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := logger.RequestID(ctx)

	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		req = LoginRequest{}
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		h.countLogin("bad_request")
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, ok := demoUsers[req.Email]
	if !ok || subtle.ConstantTimeCompare([]byte(req.Password), []byte(demoPassword)) != 1 {
		h.countLogin("invalid")
		h.logger.InfoContext(ctx, "demo login rejected",
			"request_id", requestID,
			"email", req.Email,
		)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid credentials", Hint: loginHint})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.countLogin("error")
		h.logger.ErrorContext(ctx, "demo token signing failed",
			"request_id", requestID,
			"user_id", user.ID,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.countLogin("success")
	h.logger.InfoContext(ctx, "demo login",
		"request_id", requestID,
		"user_id", user.ID,
		"role", user.Role,
	)
	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		User:    user,
		Token:   token,
		Message: "Demo authentication successful",
	})
}

func (h *Handler) issueToken(user User) (string, error) {
	now := h.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, DemoClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    demoIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(h.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign demo token: %w", err)
	}
	return signed, nil
}

func (h *Handler) countLogin(result string) {
	if h.metrics != nil {
		h.metrics.IncDemoLogin(result)
	}
}
