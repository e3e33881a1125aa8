package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
)

func welcomeHandler(version string) echo.HandlerFunc {
	body := messageResp{Message: "Welcome to the Email Tracker API v" + version + "!"}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, body)
	}
}

func readyHandler(svc Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Ready(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
}
