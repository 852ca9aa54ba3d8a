package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/memochat-ai/memochat/app/logic/v1"
	"github.com/memochat-ai/memochat/app/response"
	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/types"
	"github.com/memochat-ai/memochat/pkg/utils"
)

type CreateResourceRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

type CreateResourceResponse struct {
	Message string `json:"message"`
}

func (s *HttpSrv) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	outcome, ok := v1.NewResourceLogic(c, s.Core).CreateResource(req.Content)
	if !ok {
		response.APIError(c, errors.New("handler.CreateResource", outcome, nil))
		return
	}

	response.APISuccess(c, CreateResourceResponse{Message: outcome})
}

type ListResourcesRequest struct {
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required"`
}

type ListResourcesResponse struct {
	List  []types.Resource `json:"list"`
	Total int64            `json:"total"`
}

func (s *HttpSrv) ListResources(c *gin.Context) {
	var req ListResourcesRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, total, err := v1.NewResourceLogic(c, s.Core).ListResources(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListResourcesResponse{
		List:  list,
		Total: total,
	})
}

func (s *HttpSrv) DeleteResource(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if id == "" {
		response.APIError(c, errors.New("handler.DeleteResource", errors.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	if err := v1.NewResourceLogic(c, s.Core).DeleteResource(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) RebuildResource(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if id == "" {
		response.APIError(c, errors.New("handler.RebuildResource", errors.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	if err := v1.NewResourceLogic(c, s.Core).RebuildEmbeddings(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type SearchMemoryRequest struct {
	Question string `json:"question" form:"question" binding:"required"`
}

type SearchMemoryResponse struct {
	List []types.MemoryFragment `json:"list"`
}

// SearchMemory 面向调试的记忆检索入口，与 getInformation 工具同一条路径。
func (s *HttpSrv) SearchMemory(c *gin.Context) {
	var req SearchMemoryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	fragments, err := v1.NewResourceLogic(c, s.Core).SearchMemory(req.Question)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, SearchMemoryResponse{List: fragments})
}
