package handler

import (
	"net/http"

	brandmodels "kredita/internal/brand/models"
	"kredita/internal/platform/middleware"
	"kredita/internal/registration/models"
	"kredita/internal/web"
)

// handlePersonalInformationPage shows the credentials released through a
// non-hosted 1-click link so the visitor can confirm them.
func (h *Handler) handlePersonalInformationPage(w http.ResponseWriter, r *http.Request) {
	state := models.DecodeFlowState(r.URL.Query())
	set, fromQuery := h.brands.Resolve(r)

	info, err := h.svc.PersonalInformation(r.Context(), state, set.APIKey)
	if err != nil {
		h.renderFailure(w, r, set, err)
		return
	}
	if info == nil {
		http.Redirect(w, r, PathRegister+query(r), http.StatusFound)
		return
	}

	h.persistBrand(w, r, set, fromQuery)
	h.renderer.Render(w, r, http.StatusOK, web.TemplatePersonalInformation, web.PersonalInformationPage{
		Page: web.Page{Brand: set.Brand, Query: state.Query()},
		Info: *info,
	})
}

// handlePersonalInformationConfirm signs the visitor in once they confirm the
// released details. The identity comes from a fresh lookup of the 1-click
// credentials; posted fields are never trusted.
func (h *Handler) handlePersonalInformationConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := models.DecodeFlowState(r.URL.Query())
	set, fromQuery := h.brands.Resolve(r)

	if state.Kind != models.KindOneClickPending {
		h.logger.WarnContext(ctx, "confirmation without pending 1-click verification",
			"request_id", middleware.GetRequestID(ctx),
		)
		http.Redirect(w, r, PathRegister+state.Query(), http.StatusFound)
		return
	}

	verification, err := h.svc.Resume(ctx, state, set.APIKey)
	if err != nil {
		h.renderFailure(w, r, set, err)
		return
	}
	if verification == nil {
		http.Redirect(w, r, PathRegister+state.Completed().Query(), http.StatusFound)
		return
	}

	var brand *brandmodels.Set
	if fromQuery {
		brand = &set
	}
	if err := h.sessions.Create(w, r, verification.Identity, brand); err != nil {
		h.renderFailure(w, r, set, err)
		return
	}
	http.Redirect(w, r, PathVerified+state.Completed().Query(), http.StatusFound)
}
