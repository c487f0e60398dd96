package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	GenerateToken(userID int) (string, error)
	VerifyToken(token string) (int, error)
	GenerateResetCode() (string, error)
}

type authService struct {
	secretKey []byte
	tokenTTL  time.Duration
}

func NewAuthService(secretKey string) AuthService {
	return &authService{secretKey: []byte(secretKey), tokenTTL: tokenTTL}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. A
// malformed stored hash counts as a mismatch, never a fault for the
// caller.
func (s *authService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) GenerateToken(userID int) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// VerifyToken checks signature and expiry and returns the token subject.
// Malformed input, a bad signature and an expired token all come back as
// ErrUnauthorized.
func (s *authService) VerifyToken(tokenStr string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrUnauthorized
	}
	return claims.UserID, nil
}

// GenerateResetCode draws a 4-digit code uniformly from [1000, 9999).
// Codes are single-use and replaced on every request, so the short space
// is acceptable.
func (s *authService) GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(8999))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
