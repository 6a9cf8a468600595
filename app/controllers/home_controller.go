package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shopapp/pkg/ctx"
)

type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

func (HomeController) Index(c *ctx.Context) error {
	return c.String(http.StatusOK, "Hello World")
}
