package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/utils"
)

const homeMessage = "Server is working"

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, homeMessage, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	buildInfo := h.services.AppInfoService.GetBuildInfo(r.Context())

	utils.WriteText(w, buildInfo.String(), http.StatusOK)
}
