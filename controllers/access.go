package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// isOwner is the single authorization predicate for mutating posts and
// comments: only the entity's author may change or remove it. Anonymous
// viewers (id 0) own nothing.
func isOwner(authorID, viewerID uint) bool {
	return viewerID != 0 && authorID == viewerID
}

// denySoft answers an unauthorized post edit with a silent redirect to the
// post's own detail page. No error is surfaced to the visitor.
func denySoft(ctx *gin.Context, postID uint) {
	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", postID))
	ctx.Abort()
}

// denyHard answers an unauthorized comment or delete attempt with an
// explicit authorization failure page. Kept distinct from denySoft on
// purpose; the two outcomes must not be unified.
func denyHard(ctx *gin.Context) {
	ctx.HTML(http.StatusForbidden, "403.html", baseData(ctx))
	ctx.Abort()
}
