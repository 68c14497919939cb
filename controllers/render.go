package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blogium/blogium/middleware"
)

// postsPerPage is the page size of every post listing.
const postsPerPage = 10

type pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

func paginate(page int, total int64) pagination {
	return pagination{
		Page:       page,
		PageSize:   postsPerPage,
		Total:      total,
		TotalPages: int((total + postsPerPage - 1) / postsPerPage),
	}
}

func parsePage(ctx *gin.Context) int {
	if p, err := strconv.Atoi(ctx.Query("page")); err == nil && p > 0 {
		return p
	}
	return 1
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// baseData seeds the template context with the requesting identity.
func baseData(ctx *gin.Context) gin.H {
	name, _ := middleware.Username(ctx)
	return gin.H{"CurrentUsername": name}
}

func renderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "404.html", baseData(ctx))
}
