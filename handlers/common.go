package handlers

import (
	"strconv"

	"eduone-core/middleware"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
)

// caller builds the service-layer identity from the auth middleware context.
func caller(c *gin.Context) services.Caller {
	return services.Caller{
		ID:          middleware.CallerID(c),
		IsSuperuser: c.GetBool(middleware.ContextIsSuperuser),
		IsAuthor:    c.GetBool(middleware.ContextIsAuthor),
	}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
