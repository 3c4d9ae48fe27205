package handler

import (
	"net/http"

	"kredita/internal/registration/models"
	"kredita/internal/web"
	"kredita/pkg/email"
	"kredita/pkg/requestcontext"
)

// handleVerifiedPage greets a signed-in visitor. It runs behind
// RequireSession, which put the identity in the context. Email identities
// are greeted by the name part of the address.
func (h *Handler) handleVerifiedPage(w http.ResponseWriter, r *http.Request) {
	state := models.DecodeFlowState(r.URL.Query())
	set, _ := h.brands.Resolve(r)
	h.renderer.Render(w, r, http.StatusOK, web.TemplateVerified, web.VerifiedPage{
		Page:     web.Page{Brand: set.Brand, Query: state.Query()},
		Name:     email.DisplayName(requestcontext.Identity(r.Context())),
		Redirect: state.Redirect,
	})
}

// handleVerifiedAction handles the buttons of the verified page. logout ends
// the session; anything else goes home.
func (h *Handler) handleVerifiedAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, PathRoot, http.StatusFound)
		return
	}
	if r.PostForm.Get("action") != models.ActionLogout {
		http.Redirect(w, r, PathRoot, http.StatusFound)
		return
	}
	h.logout(w, r, r.PostForm.Get("redirect") == "true")
}
