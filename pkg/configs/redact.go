package configs

const redactedValue = "******"

// Redacted 返回隐藏了密码与密钥的副本，用于打印.
func (c AppConfig) Redacted() AppConfig {
	mask := func(s *string) {
		if *s != "" {
			*s = redactedValue
		}
	}

	mask(&c.DB.Password)
	mask(&c.S3.SecretAccessKey)
	mask(&c.KV.Redis.Password)
	mask(&c.KV.NATS.Password)
	mask(&c.MQ.Common.Password)
	mask(&c.MQ.Redis.Password)
	mask(&c.MQ.NATS.JWT)
	mask(&c.MQ.NATS.NKey)
	mask(&c.Auth.JWTSecret)
	mask(&c.Auth.AdminPasswordHash)

	return c
}
