package handler

import (
	"footchat/internal/app/chat"
	"footchat/internal/app/community"
	"footchat/internal/app/message"
	"footchat/internal/app/storage"
	"footchat/internal/app/user"
	"footchat/internal/configs"
)

// AppDeps bundles the dependencies every handler closure receives.
type AppDeps struct {
	Config      *configs.AppConfig
	Gateway     *chat.Gateway
	Authorizer  *chat.Authorizer
	Users       *user.Store
	Communities *community.Store
	Messages    *message.Store

	// Storage is nil when no S3 settings are configured; avatar endpoints
	// then answer with a storage error.
	Storage storage.Service
}
