package config

import "errors"

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("config: nil config")

	// ErrInvalidPort 端口超出范围
	ErrInvalidPort = errors.New("config: invalid port")

	// ErrInvalidMulticastGroup 组播地址无效
	ErrInvalidMulticastGroup = errors.New("config: invalid multicast group")

	// ErrNegativeDuration 时长为负
	ErrNegativeDuration = errors.New("config: negative duration")
)

// ValidateAll 校验整个配置，nil 返回 ErrNilConfig
func ValidateAll(c *Config) error {
	if c == nil {
		return ErrNilConfig
	}
	return c.Validate()
}

// MustValidate 校验失败时 panic（仅用于初始化与测试）
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(err)
	}
}
