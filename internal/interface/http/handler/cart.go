package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/minibookstore/internal/application/cart"
	"github.com/xiebiao/minibookstore/internal/interface/http/dto"
	"github.com/xiebiao/minibookstore/internal/interface/http/middleware"
	"github.com/xiebiao/minibookstore/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 会话ID由CartSession中间件注入,所有接口都按会话隔离
type CartHandler struct {
	getCartUseCase        *appcart.GetCartUseCase
	cartSummaryUseCase    *appcart.CartSummaryUseCase
	addToCartUseCase      *appcart.AddToCartUseCase
	removeFromCartUseCase *appcart.RemoveFromCartUseCase
	replaceCartUseCase    *appcart.ReplaceCartUseCase
	clearCartUseCase      *appcart.ClearCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	getCartUseCase *appcart.GetCartUseCase,
	cartSummaryUseCase *appcart.CartSummaryUseCase,
	addToCartUseCase *appcart.AddToCartUseCase,
	removeFromCartUseCase *appcart.RemoveFromCartUseCase,
	replaceCartUseCase *appcart.ReplaceCartUseCase,
	clearCartUseCase *appcart.ClearCartUseCase,
) *CartHandler {
	return &CartHandler{
		getCartUseCase:        getCartUseCase,
		cartSummaryUseCase:    cartSummaryUseCase,
		addToCartUseCase:      addToCartUseCase,
		removeFromCartUseCase: removeFromCartUseCase,
		replaceCartUseCase:    replaceCartUseCase,
		clearCartUseCase:      clearCartUseCase,
	}
}

// GetCart 购物车全部行
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Param        X-Cart-Session header string false "购物车会话Token,缺失或失效时自动签发"
// @Success      200 {array} dto.CartLine
// @Header       200 {string} X-Cart-Session "会话Token"
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	lines, err := h.getCartUseCase.Execute(c.Request.Context(), middleware.CartSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartLines(lines))
}

// Summary 购物车汇总
// @Summary      购物车汇总
// @Tags         购物车
// @Produce      json
// @Param        X-Cart-Session header string false "购物车会话Token"
// @Success      200 {object} dto.CartSummaryResponse
// @Router       /api/cart/summary [get]
func (h *CartHandler) Summary(c *gin.Context) {
	summary, err := h.cartSummaryUseCase.Execute(c.Request.Context(), middleware.CartSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartSummaryResponse(summary))
}

// Add 加入购物车
// @Summary      加入购物车
// @Description  已有同一本书时数量+1,否则新增一行(quantity缺省为1)
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "购物车会话Token"
// @Param        request body dto.CartLine true "购物车行"
// @Success      200 {array} dto.CartLine
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartLine
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	lines, err := h.addToCartUseCase.Execute(c.Request.Context(), middleware.CartSessionID(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartLines(lines))
}

// Remove 从购物车移除一件
// @Summary      移除一件
// @Description  数量-1,降到0时删除整行;不在购物车中时不做修改
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "购物车会话Token"
// @Param        request body dto.CartLine true "购物车行(只使用bookId)"
// @Success      200 {array} dto.CartLine
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Router       /api/cart/remove [post]
func (h *CartHandler) Remove(c *gin.Context) {
	var req dto.CartLine
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	lines, err := h.removeFromCartUseCase.Execute(c.Request.Context(), middleware.CartSessionID(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartLines(lines))
}

// Replace 用客户端购物车覆盖会话购物车(结算同步)
// @Summary      同步购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "购物车会话Token"
// @Param        request body []dto.CartLine true "全部购物车行"
// @Success      200 {array} dto.CartLine
// @Failure      400 {object} response.ErrorBody "数量非法或bookId重复"
// @Router       /api/cart [put]
func (h *CartHandler) Replace(c *gin.Context) {
	var req []dto.CartLine
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	lines, err := h.replaceCartUseCase.Execute(c.Request.Context(), middleware.CartSessionID(c), dto.ToInputs(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartLines(lines))
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Param        X-Cart-Session header string false "购物车会话Token"
// @Success      200
// @Router       /api/cart/clear [post]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.clearCartUseCase.Execute(c.Request.Context(), middleware.CartSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}
