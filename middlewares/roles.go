package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole(models.RoleAdmin) → ผ่านถ้า role_id จาก claims ตรงอย่างน้อย 1 ค่า
// เทียบจาก claims ล้วน ๆ ไม่ query user ซ้ำ
func RequireRole(roleIDs ...uint) echo.MiddlewareFunc {
	allowed := make(map[uint]struct{}, len(roleIDs))
	for _, r := range roleIDs {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, _ := c.Get("role_id").(uint) // set ไว้โดย RequireAuth
			if _, ok := allowed[roleID]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
