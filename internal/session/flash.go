package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	flashCookie     = "flash"
	flashPendingKey = "flash.pending"
)

// Flash categories
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a message for the next page render
func AddFlash(c echo.Context, category, message string) {
	pending, ok := c.Get(flashPendingKey).([]Flash)
	if !ok {
		pending = readFlashCookie(c)
	}
	pending = append(pending, Flash{Category: category, Message: message})
	c.Set(flashPendingKey, pending)

	data, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns queued messages and clears them
func PopFlashes(c echo.Context) []Flash {
	flashes, ok := c.Get(flashPendingKey).([]Flash)
	if !ok {
		flashes = readFlashCookie(c)
	}
	c.Set(flashPendingKey, []Flash{})
	if len(flashes) > 0 {
		c.SetCookie(&http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func readFlashCookie(c echo.Context) []Flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
