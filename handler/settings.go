package handler

import (
	"net/http"

	"videobrowse-service/model"

	"github.com/gin-gonic/gin"
)

type SettingsView struct {
	Theme model.Theme `json:"theme"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsView{Theme: h.theme.Get()})
}

func (h *Handler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := model.ParseTheme(req.Theme)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	h.theme.Set(t)
	c.JSON(http.StatusOK, SettingsView{Theme: t})
}

func (h *Handler) ToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsView{Theme: h.theme.Toggle()})
}
