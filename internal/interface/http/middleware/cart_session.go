package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/pkg/jwt"
	"github.com/xiebiao/minibookstore/pkg/response"
)

// CartSessionHeader 购物车会话Token的请求/响应头
const CartSessionHeader = "X-Cart-Session"

const cartSessionKey = "cart_session_id"

// CartSessionMiddleware 购物车会话中间件
// 设计说明:
// 1. 匿名购物车,会话ID签在Token里,客户端通过X-Cart-Session头携带
// 2. Token缺失、过期或签名不符时签发新会话(旧购物车随之不可见)
// 3. 每次响应都重新签发Token,有效期随访问顺延
type CartSessionMiddleware struct {
	manager *jwt.Manager
	logger  *zap.Logger
}

// NewCartSessionMiddleware 创建会话中间件
func NewCartSessionMiddleware(manager *jwt.Manager, logger *zap.Logger) *CartSessionMiddleware {
	return &CartSessionMiddleware{
		manager: manager,
		logger:  logger,
	}
}

// Handle 解析或签发会话,会话ID写入gin.Context
func (m *CartSessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 解析已有Token
		sessionID, err := m.manager.Parse(c.GetHeader(CartSessionHeader))
		if err != nil {
			if c.GetHeader(CartSessionHeader) != "" {
				m.logger.Debug("购物车会话无效,重新签发", zap.Error(err))
			}
			sessionID = ""
		}

		// 2. 续签或签发新会话
		var token string
		if sessionID != "" {
			token, err = m.manager.Issue(sessionID)
		} else {
			sessionID, token, err = m.manager.NewSession()
		}
		if err != nil {
			response.Error(c, err)
			return
		}

		// 3. 写入Context和响应头
		c.Set(cartSessionKey, sessionID)
		c.Header(CartSessionHeader, token)

		c.Next()
	}
}

// CartSessionID 获取当前购物车会话ID(未经过中间件时为空)
func CartSessionID(c *gin.Context) string {
	return c.GetString(cartSessionKey)
}
