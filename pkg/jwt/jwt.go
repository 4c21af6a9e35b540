package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "minibookstore"

var (
	// ErrTokenExpired 会话Token已过期
	ErrTokenExpired = errors.New("cart session token expired")
	// ErrInvalidToken Token格式错误、签名不符或缺少会话ID
	ErrInvalidToken = errors.New("invalid cart session token")
)

// Manager 购物车会话Token管理器
// 设计说明：
// 1. 匿名购物车没有用户体系，会话ID（UUID）签进Token里由客户端保存
// 2. 使用HS256签名，服务端无需存储会话表
// 3. Token失效后由调用方重新签发，购物车数据随旧会话过期
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager 创建会话Token管理器
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Claims 会话Claims
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// NewSession 生成新会话ID并签发Token
func (m *Manager) NewSession() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = m.Issue(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Issue 为指定会话签发Token
func (m *Manager) Issue(sessionID string) (string, error) {
	now := m.now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("签发会话Token失败: %w", err)
	}
	return token, nil
}

// Parse 校验Token并返回会话ID
func (m *Manager) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 只接受HMAC签名，防止alg=none等算法替换
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
