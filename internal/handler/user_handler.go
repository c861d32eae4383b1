package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/req"
	"footchat/internal/pkg/resp"
)

const (
	// maxAvatarSize caps avatar uploads at 2 MB.
	maxAvatarSize = 2 * 1024 * 1024

	// presignDuration is how long the generated upload/download URLs stay valid.
	presignDuration = 5 * time.Minute
)

// avatarExtToMIME whitelists avatar file types by extension.
var avatarExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// HandleGetProfile returns the caller's account.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"user": CurrentUser(r),
		})
	}
}

type UpdateAvatarInput struct {
	AvatarKey string `json:"avatar_key"`
}

// HandleUpdateAvatar stores a new avatar key after the client finished a
// presigned upload.
func HandleUpdateAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)

		var input UpdateAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		expectedPrefix := fmt.Sprintf("avatars/%d/", u.ID)
		if !strings.HasPrefix(input.AvatarKey, expectedPrefix) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		updated, err := deps.Users.UpdateAvatar(r.Context(), u.ID, input.AvatarKey)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": updated,
		})
	}
}

type PresignAvatarInput struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

// HandlePresignAvatarURL generates a presigned PUT URL for an avatar upload,
// scoped under the caller's id so users cannot overwrite each other's files.
func HandlePresignAvatarURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageUnavailable))
			return
		}

		u := CurrentUser(r)

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.FileSize <= 0 || input.FileSize > maxAvatarSize {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		ext := strings.ToLower(filepath.Ext(input.FileName))
		expectedMIME, ok := avatarExtToMIME[ext]
		if !ok || expectedMIME != strings.ToLower(input.MimeType) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		key := fmt.Sprintf("avatars/%d/%s%s", u.ID, uuid.NewString(), ext)

		url, err := deps.Storage.PresignUpload(r.Context(), key, expectedMIME, input.FileSize, presignDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"upload_url": url,
			"avatar_key": key,
		})
	}
}

// HandleAvatarDownloadURL resolves an avatar key to a presigned GET URL.
func HandleAvatarDownloadURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageUnavailable))
			return
		}

		key := r.URL.Query().Get("key")
		if key == "" || !strings.HasPrefix(key, "avatars/") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		url, err := deps.Storage.PresignDownload(r.Context(), key, presignDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"download_url": url,
		})
	}
}
