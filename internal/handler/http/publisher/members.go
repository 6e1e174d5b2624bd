package publisher

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	pubUC "newsroom/internal/usecase/publisher"
)

type memberKind int

const (
	entityKindEditor memberKind = iota
	entityKindJournalist
)

type memberOp int

const (
	memberOpAdd memberOp = iota
	memberOpRemove
)

// MemberHandler adds or removes a user from one of the publisher's
// member sets. Adds take the user ID in the body, removes in the path.
type MemberHandler struct {
	Svc  *pubUC.Service
	Kind memberKind
	Op   memberOp
}

func (h MemberHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	publisherID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var userID int64
	if h.Op == memberOpAdd {
		var req struct {
			UserID int64 `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
		userID = req.UserID
	} else {
		userID, err = pathutil.ParseID(r.PathValue("userID"))
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
	}

	switch {
	case h.Kind == entityKindEditor && h.Op == memberOpAdd:
		err = h.Svc.AddEditor(r.Context(), id.Actor(), publisherID, userID)
	case h.Kind == entityKindEditor && h.Op == memberOpRemove:
		err = h.Svc.RemoveEditor(r.Context(), id.Actor(), publisherID, userID)
	case h.Kind == entityKindJournalist && h.Op == memberOpAdd:
		err = h.Svc.AddJournalist(r.Context(), id.Actor(), publisherID, userID)
	default:
		err = h.Svc.RemoveJournalist(r.Context(), id.Actor(), publisherID, userID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
