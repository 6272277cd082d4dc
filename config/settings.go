package config

import "time"

// Settings 应用程序的强类型配置
//
// 对应的 YAML：
//
//	app:
//	  name: HelloApp
//	logging:
//	  provider: console   # console | zap
//	  level: info
//	  format: text        # text | json
//	etcd:
//	  endpoints: ["127.0.0.1:2379"]
//	  prefix: /greeter
type Settings struct {
	App     AppSettings     `json:"app"`
	Logging LoggingSettings `json:"logging"`
	Etcd    EtcdSettings    `json:"etcd"`
}

// AppSettings 应用配置
type AppSettings struct {
	Name string `json:"name"`
}

// LoggingSettings 日志配置
type LoggingSettings struct {
	Provider string `json:"provider"`
	Level    string `json:"level"`
	Format   string `json:"format"`
}

// EtcdSettings etcd 配置源设置，Endpoints 为空时不启用
type EtcdSettings struct {
	Endpoints   []string `json:"endpoints"`
	Prefix      string   `json:"prefix"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	DialTimeout string   `json:"dialTimeout"`
}

// DefaultAppName 未配置 app.name 时使用的应用名称
const DefaultAppName = "HelloApp"

// DefaultSettings 返回默认配置
func DefaultSettings() Settings {
	return Settings{
		App: AppSettings{Name: DefaultAppName},
		Logging: LoggingSettings{
			Provider: "console",
			Level:    "info",
			Format:   "text",
		},
	}
}

// EtcdOptions 将 etcd 设置转换为配置源选项
func (s EtcdSettings) EtcdOptions() EtcdOptions {
	opts := EtcdOptions{
		Endpoints: s.Endpoints,
		Username:  s.Username,
		Password:  s.Password,
		Prefix:    s.Prefix,
	}
	if d, err := time.ParseDuration(s.DialTimeout); err == nil {
		opts.DialTimeout = d
	}
	return opts
}
