package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/memochat-ai/memochat/app/logic/v1"
)

type GenerateQueryRequest struct {
	Input string `json:"input" binding:"required"`
}

// GenerateQuery 把自然语言问题翻译成检索语句，不执行。
func (s *HttpSrv) GenerateQuery(c *gin.Context) {
	var req GenerateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input is required"})
		return
	}

	query, err := v1.NewQueryLogic(c, s.Core).Generate(req.Input)
	if err != nil {
		slog.Error("failed to generate query", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate query"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"input": req.Input,
		"query": query,
	})
}

type ExecuteQueryRequest struct {
	Query string `json:"query"`
}

// ExecuteQuery 执行一条只读检索语句并返回行数据。
func (s *HttpSrv) ExecuteQuery(c *gin.Context) {
	var req ExecuteQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	rows, err := v1.NewQueryLogic(c, s.Core).Execute(req.Query)
	if err != nil {
		slog.Error("failed to execute query", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute query"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": rows})
}
