package router

import (
	"net/http"

	"github.com/deppfellow/contacts-service/internal/handler"
	"github.com/deppfellow/contacts-service/internal/middleware"
	"github.com/labstack/echo/v4"
)

func registerContactRoutes(r *echo.Echo, h *handler.Handlers) {
	contacts := r.Group("/contacts")

	contacts.GET("", handler.Handle(h.Contact.Handler, h.Contact.List, http.StatusOK))
	contacts.POST("", handler.Handle(h.Contact.Handler, h.Contact.Create, http.StatusCreated))

	// :id only matches integers; anything else is an unknown route.
	byID := middleware.IntParam("id")

	contacts.GET("/:id", handler.Handle(h.Contact.Handler, h.Contact.Get, http.StatusOK), byID)
	contacts.PUT("/:id", handler.HandleNoContent(h.Contact.Handler, h.Contact.Replace, http.StatusNoContent), byID)
	contacts.DELETE("/:id", handler.HandleNoContent(h.Contact.Handler, h.Contact.Delete, http.StatusNoContent), byID)
}
