package stream

import "github.com/aretha12/MoGrow/internal/stream/redis"

type StreamConfig struct {
	Provider    string // redis is the only provider so far
	RedisConfig *redis.RedisStreamConfig
}
