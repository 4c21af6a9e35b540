package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/minibookstore/internal/application/book"
	"github.com/xiebiao/minibookstore/internal/interface/http/dto"
	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
	"github.com/xiebiao/minibookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase      *appbook.ListBooksUseCase
	listCategoriesUseCase *appbook.ListCategoriesUseCase
	getBookUseCase        *appbook.GetBookUseCase
	createBookUseCase     *appbook.CreateBookUseCase
	updateBookUseCase     *appbook.UpdateBookUseCase
	deleteBookUseCase     *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	listCategoriesUseCase *appbook.ListCategoriesUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:      listBooksUseCase,
		listCategoriesUseCase: listCategoriesUseCase,
		getBookUseCase:        getBookUseCase,
		createBookUseCase:     createBookUseCase,
		updateBookUseCase:     updateBookUseCase,
		deleteBookUseCase:     deleteBookUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按分类过滤(精确匹配,区分大小写),服务端排序,分页返回
// @Tags         图书
// @Produce      json
// @Param        category  query  string  false  "分类"
// @Param        page      query  int     false  "页码(从1开始)"  default(1)
// @Param        pageSize  query  int     false  "每页数量"      default(5)
// @Param        sortBy    query  string  false  "排序字段"      Enums(title,author,publisher,isbn,category,pageCount,price)  default(title)
// @Param        order     query  string  false  "排序方向"      Enums(asc,desc)  default(asc)
// @Success      200 {object} dto.ListBooksResponse
// @Failure      400 {object} response.ErrorBody "分页或排序参数错误"
// @Router       /api/book [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	// 1. 参数绑定
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), req.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.OK(c, dto.NewListBooksResponse(result))
}

// ListCategories 分类列表
// @Summary      分类列表
// @Description  去重后按字母升序
// @Tags         图书
// @Produce      json
// @Success      200 {array} string
// @Router       /api/book/categories [get]
func (h *BookHandler) ListCategories(c *gin.Context) {
	categories, err := h.listCategoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	response.OK(c, categories)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id  path  int  true  "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "ID格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/book/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	b, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponse(b))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  忽略请求体中的bookID,由服务端生成
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Header       201 {string} Location "新图书地址"
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Router       /api/book [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	// 2. 调用应用层用例
	created, err := h.createBookUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 201 + Location
	response.Created(c, fmt.Sprintf("/api/book/%d", created.ID), dto.NewBookResponse(created))
}

// UpdateBook 修改图书(整条替换)
// @Summary      修改图书
// @Description  路径ID必须与请求体bookID一致
// @Tags         图书
// @Accept       json
// @Param        id      path  int              true  "图书ID"
// @Param        request body  dto.BookRequest  true  "图书信息"
// @Success      204
// @Failure      400 {object} response.ErrorBody "参数错误或ID不一致"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/book/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.updateBookUseCase.Execute(c.Request.Context(), id, req.ToInput()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id  path  int  true  "图书ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/book/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// bookID 解析路径参数id,失败时直接写400
func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.WithDetail(apperrors.ErrBindError, "无效的图书ID: "+c.Param("id")))
		return 0, false
	}
	return uint(id), true
}
