package handler

import (
	"net/http"

	brandmodels "kredita/internal/brand/models"
	"kredita/internal/registration/models"
	"kredita/internal/web"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/httputil"
)

// handleRegisterPage serves the registration form. When the query carries a
// shared credentials or 1-click uuid the flow is resumed first; a successful
// lookup signs the visitor in, anything else falls back to the form.
func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := models.DecodeFlowState(r.URL.Query())
	set, fromQuery := h.brands.Resolve(r)

	verification, err := h.svc.Resume(ctx, state, set.APIKey)
	if err != nil {
		h.renderFailure(w, r, set, err)
		return
	}
	if verification != nil {
		var brand *brandmodels.Set
		if fromQuery {
			brand = &set
		}
		if err := h.sessions.Create(w, r, verification.Identity, brand); err != nil {
			h.renderFailure(w, r, set, err)
			return
		}
		http.Redirect(w, r, PathVerified+state.Completed().Query(), http.StatusFound)
		return
	}

	h.persistBrand(w, r, set, fromQuery)
	h.renderRegister(w, r, http.StatusOK, web.RegisterPage{
		Page: web.Page{Brand: set.Brand, Query: state.Query()},
	})
}

// handleRegisterAction dispatches the posted form on its action field.
func (h *Handler) handleRegisterAction(w http.ResponseWriter, r *http.Request) {
	set, _ := h.brands.Resolve(r)
	if err := r.ParseForm(); err != nil {
		h.actionError(w, r, set, "", web.RegisterPage{}, models.ErrInvalidFormData)
		return
	}
	action, err := models.ParseAction(r.PostForm)
	if err != nil {
		h.actionError(w, r, set, "", web.RegisterPage{}, err)
		return
	}

	switch action {
	case models.ActionRegular:
		h.regular(w, r, set)
	case models.ActionOneClick:
		h.oneClick(w, r, set)
	case models.ActionReset:
		h.reset(w, r, set)
	case models.ActionLogout:
		h.logout(w, r, r.PostForm.Get("redirect") == "true")
	}
}

func (h *Handler) regular(w http.ResponseWriter, r *http.Request, set brandmodels.Set) {
	ctx := r.Context()
	state := models.DecodeFlowState(r.URL.Query())
	req, err := models.ParseRegularRequest(r.PostForm)
	if err != nil {
		h.actionError(w, r, set, models.ActionRegular, web.RegisterPage{}, err)
		return
	}
	form := web.RegisterPage{Email: req.Email, Phone: req.Phone}

	target, err := h.svc.Regular(ctx, req, state)
	if err != nil {
		h.actionError(w, r, set, models.ActionRegular, form, err)
		return
	}
	if target == "" {
		if wantsHTML(r) {
			form.Error = models.MsgNoMatch
			h.renderRegister(w, r, http.StatusOK, h.registerPage(r, set, form))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, models.NoMatch())
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) oneClick(w http.ResponseWriter, r *http.Request, set brandmodels.Set) {
	ctx := r.Context()
	state := models.DecodeFlowState(r.URL.Query())
	req, err := models.ParseOneClickRequest(r.PostForm)
	if err != nil {
		h.actionError(w, r, set, models.ActionOneClick, web.RegisterPage{}, err)
		return
	}
	form := web.RegisterPage{Phone: req.Phone, BirthDate: req.BirthDate}

	res, err := h.svc.OneClick(ctx, req, state, set.APIKey)
	if err != nil {
		h.actionError(w, r, set, models.ActionOneClick, form, err)
		return
	}
	if state.Redirect {
		http.Redirect(w, r, res.URL, http.StatusFound)
		return
	}
	if wantsHTML(r) {
		form.SentTo = res.Phone
		h.renderRegister(w, r, http.StatusOK, h.registerPage(r, set, form))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.OneClickSent(res.URL, res.Phone))
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request, set brandmodels.Set) {
	if wantsHTML(r) {
		h.renderRegister(w, r, http.StatusOK, h.registerPage(r, set, web.RegisterPage{}))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.Reset())
}

// actionError answers a failed action with the status derived from err.
// Browsers get the form back with the message; everything else gets JSON.
func (h *Handler) actionError(w http.ResponseWriter, r *http.Request, set brandmodels.Set, action string, form web.RegisterPage, err error) {
	h.logActionError(r, action, err)
	if !wantsHTML(r) {
		httputil.WriteError(w, err)
		return
	}
	form.Error = httputil.PublicMessage(err)
	h.renderRegister(w, r, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), h.registerPage(r, set, form))
}

// registerPage fills in the brand and query of a re-rendered form.
func (h *Handler) registerPage(r *http.Request, set brandmodels.Set, form web.RegisterPage) web.RegisterPage {
	form.Brand = set.Brand
	form.Query = models.DecodeFlowState(r.URL.Query()).Query()
	return form
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, status int, page web.RegisterPage) {
	h.renderer.Render(w, r, status, web.RegisterTemplate(h.svc.Flow()), page)
}

// persistBrand remembers a brand picked through the query string for the
// rest of the visit.
func (h *Handler) persistBrand(w http.ResponseWriter, r *http.Request, set brandmodels.Set, fromQuery bool) {
	if !fromQuery {
		return
	}
	if err := h.brands.Persist(w, r, set); err != nil {
		h.logger.WarnContext(r.Context(), "failed to persist brand",
			"brand", set.Brand.UUID,
			"error", err,
		)
	}
}
