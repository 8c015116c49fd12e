package config

import (
	"gopkg.in/yaml.v3"
)

const redacted = "******"

// Dump 输出生效配置（敏感字段脱敏），用于 `recblend config` 排查环境变量覆盖结果。
func (c *Config) Dump() ([]byte, error) {
	out := *c
	if out.Events.Redis.Password != "" {
		out.Events.Redis.Password = redacted
	}
	return yaml.Marshal(&out)
}
