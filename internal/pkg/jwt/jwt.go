package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Identity 签发会话所需的身份快照
type Identity struct {
	UserID        int64
	Email         string
	Name          string
	AvatarURL     string
	Role          string
	EmailVerified bool
	IsNewUser     bool
}

// Claims 会话声明，签发后不再访问存储，刷新时才重新读取
type Claims struct {
	UserID        int64  `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	IsNewUser     bool   `json:"is_new_user,omitempty"`
	jwt.RegisteredClaims
}

// Identity 还原为身份快照
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:        c.UserID,
		Email:         c.Email,
		Name:          c.Name,
		AvatarURL:     c.AvatarURL,
		Role:          c.Role,
		EmailVerified: c.EmailVerified,
		IsNewUser:     c.IsNewUser,
	}
}

// GenerateToken 签发 HS256 token
func GenerateToken(id Identity, secret string, expireHours int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        id.UserID,
		Email:         id.Email,
		Name:          id.Name,
		AvatarURL:     id.AvatarURL,
		Role:          id.Role,
		EmailVerified: id.EmailVerified,
		IsNewUser:     id.IsNewUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 校验签名与有效期
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
