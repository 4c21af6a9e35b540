package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/minibookstore/internal/infrastructure/config"
)

var (
	allowMethods  = strings.Join([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, ", ")
	exposeHeaders = strings.Join([]string{CartSessionHeader, RequestIDHeader, "Location"}, ", ")
)

// CORS 跨域中间件
// 只允许配置的一个前端来源,允许任意请求头和方法。
// 来源不匹配时不写CORS头,由浏览器拦截;CLI等非浏览器客户端不受影响。
// 暴露X-Cart-Session,前端才能读到签发的会话Token。
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin == cfg.AllowOrigin {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Expose-Headers", exposeHeaders)

			// 允许任意头:回显预检请求声明的头
			if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			} else {
				h.Set("Access-Control-Allow-Headers", "*")
			}
		}

		// 预检请求
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
