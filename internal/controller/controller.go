package controller

import (
	"strconv"

	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的 :id，非法时直接返回400
func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return id, true
}

// queryInt 解析整型query参数，缺省时返回默认值
func queryInt(ctx *gin.Context, key string, fallback int) int {
	v := ctx.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
