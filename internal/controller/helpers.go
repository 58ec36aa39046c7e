package controller

import (
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser returns the authenticated caller, answering 401 when absent.
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return false
	}
	return true
}

func pageParams(ctx *gin.Context) (int, int) {
	return util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
}

func pageResponse(list interface{}, total int64, page, limit int) util.PageResponse {
	return util.PageResponse{List: list, Total: total, Page: page, Limit: limit}
}
