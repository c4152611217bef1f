package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/username/cardfolio/backend/internal/models"
)

const bcryptCost = 12

// tokenCacheSize bounds the validated-token cache. Tokens are revalidated
// against their expiry on every hit, so a cached entry never outlives its exp.
const tokenCacheSize = 1024

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the validated identity carried by an access token.
type Claims struct {
	UserID uint
	Role   models.Role
	Expiry time.Time
}

type AuthService struct {
	jwtSecret   []byte
	tokenExpiry time.Duration
	cache       *lru.Cache[string, Claims]
}

func NewAuthService(secret string, tokenExpiry time.Duration) *AuthService {
	cache, _ := lru.New[string, Claims](tokenCacheSize)
	return &AuthService{
		jwtSecret:   []byte(secret),
		tokenExpiry: tokenExpiry,
		cache:       cache,
	}
}

func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthService) CompareHashAndPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateToken issues an HS256 access token for the given user.
func (a *AuthService) GenerateToken(userID uint, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"role": string(role),
		"exp":  now.Add(a.tokenExpiry).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken verifies a token and returns its claims. Successful
// validations are cached so the signature is only checked once per token.
func (a *AuthService) ValidateToken(tokenString string) (Claims, error) {
	if cached, ok := a.cache.Get(tokenString); ok {
		if time.Now().After(cached.Expiry) {
			a.cache.Remove(tokenString)
			return Claims{}, ErrTokenExpired
		}
		return cached, nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok || sub <= 0 {
		return Claims{}, ErrInvalidToken
	}
	roleStr, ok := mapClaims["role"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		UserID: uint(sub),
		Role:   models.Role(roleStr),
		Expiry: time.Unix(int64(exp), 0),
	}
	a.cache.Add(tokenString, claims)
	return claims, nil
}
