package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/erp/console/internal/infrastructure/intl"
)

// Localizer installs a request localizer picked from Accept-Language.
// Vietnamese is the fallback when the header is absent or unsupported.
func Localizer(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := intl.MatchLanguage(c.GetHeader("Accept-Language"))
		ctx := intl.WithLocalizer(c.Request.Context(), i18n.NewLocalizer(bundle, tag.String()))
		ctx = intl.WithLocale(ctx, tag)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
