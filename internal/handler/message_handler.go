package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"footchat/internal/app/chat"
	"footchat/internal/app/message"
	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/logx"
	"footchat/internal/pkg/req"
	"footchat/internal/pkg/resp"
)

// HandleListMessages returns a community's message history, oldest first.
// Membership is checked with the same IsMember query the chat gateway uses.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		communityID, customErr := req.Int64Param(chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		isMember, err := deps.Communities.IsMember(r.Context(), u.ID, communityID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}
		if !isMember {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAMember))
			return
		}

		limit := message.ClampLimit(req.IntQuery(r, "limit", message.DefaultListLimit))
		offset := req.IntQuery(r, "offset", 0)

		messages, err := deps.Messages.List(r.Context(), communityID, limit, offset)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		total, err := deps.Messages.Count(r.Context(), communityID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages":    messages,
			"total_count": total,
			"limit":       limit,
			"offset":      offset,
		})
	}
}

type SendMessageInput struct {
	Content string `json:"content"`
}

// HandleSendMessage persists a message over REST and, only after the row has
// committed, fans it out to the room through the gateway. Observers cannot
// tell REST sends apart from WebSocket sends.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		communityID, customErr := req.Int64Param(chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		isMember, err := deps.Communities.IsMember(r.Context(), u.ID, communityID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}
		if !isMember {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAMember))
			return
		}

		msg, err := deps.Messages.Append(r.Context(), input.Content, u.ID, communityID)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		msg.Username = u.Username
		msg.AvatarURL = u.AvatarURL

		if event, err := chat.NewEvent(chat.EventReceiveMessage, msg); err == nil {
			deps.Gateway.Broadcast(communityID, event)
		} else {
			logx.Error(err, "Failed to build broadcast event for REST send", "message_id", msg.ID)
		}

		resp.RespondCreated(w, r, map[string]any{
			"message": msg,
		})
	}
}

// HandleDeleteMessage deletes a message. Only the author may delete; there is
// no admin override.
func HandleDeleteMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		messageID, customErr := req.Int64Param(chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Messages.Delete(r.Context(), messageID, u.ID); err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		logx.Info("Message deleted", "message_id", messageID, "user_id", u.ID)

		resp.RespondSuccess(w, r, nil)
	}
}
