package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/logx"
	"footchat/internal/pkg/req"
	"footchat/internal/pkg/resp"
)

type CreateCommunityInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ClubName    string `json:"club_name,omitempty"`
}

// HandleCreateCommunity creates a community; the creator becomes its admin
// member and member_count starts at 1.
func HandleCreateCommunity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		var input CreateCommunityInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Name == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		c, err := deps.Communities.Create(r.Context(), input.Name, input.Description, input.ClubName, u.ID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		logx.Info("Community created", "community_id", c.ID, "creator_id", u.ID)

		resp.RespondCreated(w, r, map[string]any{
			"community": c,
		})
	}
}

// HandleListCommunities returns all public communities.
func HandleListCommunities(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		communities, err := deps.Communities.List(r.Context())
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"communities": communities,
		})
	}
}

// HandleMyCommunities returns the communities the caller belongs to.
func HandleMyCommunities(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		communities, err := deps.Communities.ListForUser(r.Context(), u.ID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"communities": communities,
		})
	}
}

// HandleGetCommunity returns one community by id.
func HandleGetCommunity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		communityID, customErr := req.Int64Param(chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		c, err := deps.Communities.GetByID(r.Context(), communityID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"community": c,
		})
	}
}

// HandleJoinCommunity adds the caller as a member. A repeated join answers
// with the benign already-a-member conflict.
func HandleJoinCommunity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		communityID, customErr := req.Int64Param(chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Communities.Join(r.Context(), communityID, u.ID); err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		logx.Info("User joined community", "community_id", communityID, "user_id", u.ID)

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleLeaveCommunity removes the caller's membership.
func HandleLeaveCommunity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		communityID, customErr := req.Int64Param(chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Communities.Leave(r.Context(), communityID, u.ID); err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		logx.Info("User left community", "community_id", communityID, "user_id", u.ID)

		resp.RespondSuccess(w, r, nil)
	}
}
