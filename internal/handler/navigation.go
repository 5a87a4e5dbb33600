package handler

import (
	"net/http"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/navigator"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type NavigationHandler struct {
	sections []string
	opts     []navigator.Option
	upgrader websocket.Upgrader
}

func NewNavigationHandler(sections []string, opts ...navigator.Option) *NavigationHandler {
	return &NavigationHandler{
		sections: sections,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// * The portfolio front end is served from a different origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *NavigationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/navigation/sections", h.getSections).Methods("GET")
	r.HandleFunc("/navigation/ws", h.serveSession).Methods("GET")
}

// getSections godoc
// @Summary Navigation Sections
// @Description Registered page sections and the observation options the page should use
// @Tags Navigation
// @Produce json
// @Success 200 {object} SectionsResponse
// @Router /navigation/sections [get]
func (h *NavigationHandler) getSections(w http.ResponseWriter, r *http.Request) {
	nav := navigator.New(h.sections, nil, h.opts...)
	observe := nav.ObserveOptions()

	writeSuccess(w, SectionsResponse{
		Sections:  nav.Sections(),
		NavOffset: observe.MarginTop,
		Observe:   observe,
	}, "Successfully fetched sections")
}

// serveSession godoc
// @Summary Navigation Session
// @Description Upgrades to a WebSocket that tracks the active section and issues scroll commands
// @Tags Navigation
// @Success 101 {string} string "Switching Protocols"
// @Router /navigation/ws [get]
func (h *NavigationHandler) serveSession(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if err := navigator.Serve(r.Context(), conn, h.sections, h.opts...); err != nil {
		logger.Debug("navigation session closed: %v", err)
	}
}
