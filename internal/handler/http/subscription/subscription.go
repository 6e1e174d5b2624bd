// Package subscription provides HTTP handlers for a reader's
// subscription registry. Toggles flip the subscription and report the
// resulting state, so clients never need to track it themselves.
package subscription

import (
	"errors"
	"net/http"
	"time"

	"newsroom/internal/domain/entity"
	hhttp "newsroom/internal/handler/http"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	subUC "newsroom/internal/usecase/subscription"
)

type publisherSubDTO struct {
	PublisherID  int64     `json:"publisher_id"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type journalistSubDTO struct {
	JournalistID int64     `json:"journalist_id"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type overviewDTO struct {
	Publishers  []publisherSubDTO  `json:"publishers"`
	Journalists []journalistSubDTO `json:"journalists"`
}

type toggleResponse struct {
	Subscribed bool `json:"subscribed"`
}

// Register registers all subscription-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *subUC.Service) {
	mux.Handle("GET /subscriptions", ListHandler{svc})
	mux.Handle("POST /subscriptions/publishers/{id}/toggle", TogglePublisherHandler{svc})
	mux.Handle("POST /subscriptions/journalists/{id}/toggle", ToggleJournalistHandler{svc})
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, subUC.ErrInvalidTargetID):
		code = http.StatusBadRequest
	case errors.Is(err, subUC.ErrTargetNotFound):
		code = http.StatusNotFound
	case errors.Is(err, entity.ErrPermissionDenied):
		code = http.StatusForbidden
	}
	respond.SafeError(w, code, err)
}

type ListHandler struct{ Svc *subUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	overview, err := h.Svc.List(r.Context(), id.Actor())
	if err != nil {
		writeError(w, err)
		return
	}

	out := overviewDTO{
		Publishers:  make([]publisherSubDTO, 0, len(overview.Publishers)),
		Journalists: make([]journalistSubDTO, 0, len(overview.Journalists)),
	}
	for _, s := range overview.Publishers {
		out.Publishers = append(out.Publishers, publisherSubDTO{
			PublisherID:  s.PublisherID,
			SubscribedAt: s.SubscribedAt,
		})
	}
	for _, s := range overview.Journalists {
		out.Journalists = append(out.Journalists, journalistSubDTO{
			JournalistID: s.JournalistID,
			SubscribedAt: s.SubscribedAt,
		})
	}
	respond.JSON(w, http.StatusOK, out)
}

type TogglePublisherHandler struct{ Svc *subUC.Service }

func (h TogglePublisherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	publisherID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	subscribed, err := h.Svc.TogglePublisher(r.Context(), id.Actor(), publisherID)
	if err != nil {
		writeError(w, err)
		return
	}
	hhttp.RecordSubscriptionToggle("publisher", subscribed)
	respond.JSON(w, http.StatusOK, toggleResponse{Subscribed: subscribed})
}

type ToggleJournalistHandler struct{ Svc *subUC.Service }

func (h ToggleJournalistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	journalistID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	subscribed, err := h.Svc.ToggleJournalist(r.Context(), id.Actor(), journalistID)
	if err != nil {
		writeError(w, err)
		return
	}
	hhttp.RecordSubscriptionToggle("journalist", subscribed)
	respond.JSON(w, http.StatusOK, toggleResponse{Subscribed: subscribed})
}
