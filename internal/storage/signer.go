package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 表示签名 URL 的令牌校验失败。
var ErrInvalidToken = errors.New("storage: invalid or expired token")

// Grant 是签名 URL 授予的权限：读取一个对象，可选缩放。
type Grant struct {
	Bucket    string
	Path      string
	Transform *Transform
}

type grantClaims struct {
	Bucket    string     `json:"bkt"`
	Path      string     `json:"url"`
	Transform *Transform `json:"tf,omitempty"`
	jwt.RegisteredClaims
}

// Signer 为媒体签名 URL 签发并校验 HS256 令牌。
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner 返回以 secret 作为 HMAC 密钥的 Signer。
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// Sign 返回在 ttl 内授予 g 的令牌。
func (s *Signer) Sign(g Grant, ttl time.Duration) (string, error) {
	now := s.now()
	claims := grantClaims{
		Bucket:    g.Bucket,
		Path:      g.Path,
		Transform: g.Transform,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign media token: %w", err)
	}
	return token, nil
}

// Verify 解析 token 并返回其授权。
func (s *Signer) Verify(token string) (Grant, error) {
	var claims grantClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Grant{}, ErrInvalidToken
	}
	return Grant{Bucket: claims.Bucket, Path: claims.Path, Transform: claims.Transform}, nil
}
