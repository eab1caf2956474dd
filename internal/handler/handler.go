package handler

import (
	"strconv"

	"recruiting-crm/internal/model"

	"github.com/labstack/echo/v4"
)

// currentUser returns the authenticated user placed into the context by the
// auth middleware.
func currentUser(c echo.Context) *model.User {
	user, _ := c.Get("user").(*model.User)
	return user
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
