package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"

	hhttp "newsroom/internal/handler/http"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

type CreateHandler struct{ Svc *nlUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		PublisherID *int64 `json:"publisher_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	nl, err := h.Svc.Create(r.Context(), id.Actor(), nlUC.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if nl.Independent() {
		hhttp.RecordNewsletterPublished()
	}
	respond.JSON(w, http.StatusCreated, toDTO(nl))
}

type GetHandler struct{ Svc *nlUC.Service }

type getResponse struct {
	Newsletter DTO  `json:"newsletter"`
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanApprove bool `json:"can_approve"`
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	newsletterID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	nl, decision, err := h.Svc.Get(r.Context(), id.Actor(), newsletterID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, getResponse{
		Newsletter: toDTO(nl),
		CanEdit:    decision.CanEdit,
		CanDelete:  decision.CanDelete,
		CanApprove: decision.CanApprove,
	})
}

type ListHandler struct{ Svc *nlUC.Service }

// ServeHTTP lists the newsletters visible to the caller. Drafts never
// leak beyond their author and the publisher's editors. An optional
// limit parameter trims the newest-first result.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	limit, err := pathutil.ParseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	newsletters, err := h.Svc.List(r.Context(), id.Actor())
	if err != nil {
		writeError(w, err)
		return
	}
	if limit > 0 && len(newsletters) > limit {
		newsletters = newsletters[:limit]
	}
	respond.JSON(w, http.StatusOK, toDTOs(newsletters))
}

type UpdateHandler struct{ Svc *nlUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	newsletterID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	nl, err := h.Svc.Update(r.Context(), id.Actor(), nlUC.UpdateInput{
		ID:      newsletterID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(nl))
}

type DeleteHandler struct{ Svc *nlUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	newsletterID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id.Actor(), newsletterID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type PublishHandler struct{ Svc *nlUC.Service }

// ServeHTTP publishes a draft newsletter. The published_at stamp is set
// exactly once; republishing returns 409.
func (h PublishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	newsletterID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	nl, err := h.Svc.Publish(r.Context(), id.Actor(), newsletterID)
	if err != nil {
		writeError(w, err)
		return
	}
	hhttp.RecordNewsletterPublished()
	respond.JSON(w, http.StatusOK, toDTO(nl))
}
