// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/metrics"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
	CtxUserRole  = "userRole"
)

const defaultTokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

var errNoRole = errors.New("email not present in admins or managed_users")

var tokeninfoClient = resty.New().SetTimeout(5 * time.Second)

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken issues a local HS256 session token carrying the caller's
// email and display name.
func GenerateToken(email, name string) (string, error) {
	expiryHours := 24 // default
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			expiryHours = h
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"name": name,
		"exp":  time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	return token.SignedString([]byte(secret))
}

type callerIdentity struct {
	Email string
	Name  string
}

func verifyLocalToken(raw string) (callerIdentity, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return callerIdentity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return callerIdentity{}, errors.New("invalid token claims")
	}
	email, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if email == "" {
		return callerIdentity{}, errors.New("token missing subject")
	}
	return callerIdentity{Email: email, Name: name}, nil
}

// verifyProviderToken asks the external identity provider's tokeninfo
// endpoint to validate the credential. Used when the bearer token is not one
// of our own session tokens.
func verifyProviderToken(raw string) (callerIdentity, error) {
	url := os.Getenv("TOKENINFO_URL")
	if url == "" {
		url = defaultTokeninfoURL
	}

	var info struct {
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	resp, err := tokeninfoClient.R().
		SetQueryParam("id_token", raw).
		SetResult(&info).
		Get(url)
	if err != nil {
		return callerIdentity{}, err
	}
	if resp.IsError() || info.Email == "" {
		return callerIdentity{}, errors.New("identity provider rejected token")
	}
	if info.EmailVerified == "false" {
		return callerIdentity{}, errors.New("email not verified")
	}
	return callerIdentity{Email: info.Email, Name: info.Name}, nil
}

// resolveRole checks the admins table first, then managed_users. Raw table
// queries keep this package free of a models dependency.
func resolveRole(email string) (role, name string, err error) {
	var row struct{ Name string }

	err = config.DB.Table("admins").Select("name").Where("email = ?", email).Take(&row).Error
	if err == nil {
		return RoleAdmin, row.Name, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}

	err = config.DB.Table("managed_users").Select("name").Where("email = ?", email).Take(&row).Error
	if err == nil {
		return RoleManager, row.Name, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}
	return "", "", errNoRole
}

// AuthMiddleware authenticates the bearer token and resolves the caller's
// role once per request. Handlers read identity from the context keys above.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.AuthAttempts.Inc()

		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			metrics.AuthErrors.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		identity, err := verifyLocalToken(tokenString)
		if err != nil {
			identity, err = verifyProviderToken(tokenString)
		}
		if err != nil {
			metrics.AuthErrors.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(identity.Email))
		role, resolvedName, err := resolveRole(email)
		if errors.Is(err, errNoRole) {
			metrics.AuthErrors.Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is not authorized for this application"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		name := identity.Name
		if name == "" {
			name = resolvedName
		}

		c.Set(CtxUserEmail, email)
		c.Set(CtxUserName, name)
		c.Set(CtxUserRole, role)

		metrics.AuthSuccess.Inc()
		c.Next()
	}
}

// RequireAdmin guards admin-only route groups. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}
