package mvc

import "github.com/gocrud/mvcdi/config"

// Configuration 应用配置
type Configuration struct {
	AppName string
}

func NewConfiguration() *Configuration {
	return &Configuration{AppName: config.DefaultAppName}
}

// FromSettings 从已加载的设置构建配置，应用名为空时使用默认值
func FromSettings(settings *config.Settings) *Configuration {
	cfg := NewConfiguration()
	if settings != nil && settings.App.Name != "" {
		cfg.AppName = settings.App.Name
	}
	return cfg
}
