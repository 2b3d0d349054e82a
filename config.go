package medit

import "github.com/goliatone/go-medit/internal/runtimeconfig"

var (
	ErrPersistenceKeyRequired   = runtimeconfig.ErrPersistenceKeyRequired
	ErrPersistenceDelayInvalid  = runtimeconfig.ErrPersistenceDelayInvalid
	ErrWriteTimeoutInvalid      = runtimeconfig.ErrWriteTimeoutInvalid
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDirRequired       = runtimeconfig.ErrStorageDirRequired
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrNotificationTTLInvalid   = runtimeconfig.ErrNotificationTTLInvalid
	ErrClipboardProviderUnknown = runtimeconfig.ErrClipboardProviderUnknown
	ErrRenderExtensionUnknown   = runtimeconfig.ErrRenderExtensionUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrConfigFileInvalid        = runtimeconfig.ErrConfigFileInvalid
)

type (
	Config             = runtimeconfig.Config
	PersistenceConfig  = runtimeconfig.PersistenceConfig
	StorageConfig      = runtimeconfig.StorageConfig
	RenderConfig       = runtimeconfig.RenderConfig
	NotificationConfig = runtimeconfig.NotificationConfig
	ClipboardConfig    = runtimeconfig.ClipboardConfig
	Features           = runtimeconfig.Features
	LoggingConfig      = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a JSON or JSONC configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
