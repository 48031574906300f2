package handler

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const flashCookie = "portal_flash"

// Flash is a one-shot notice carried across a redirect, the way a template
// layer would surface a form error or a success banner.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SetFlash stores a notice to be consumed by the next page load.
func SetFlash(c *gin.Context, level, message string) {
	payload, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, base64.URLEncoding.EncodeToString(payload), 60, "/", "", false, true)
}

// TakeFlash returns the pending notice, if any, and clears it.
func TakeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	payload, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var f Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil
	}
	return &f
}
