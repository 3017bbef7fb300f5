package tasks

import (
	"github.com/hibiken/asynq"
)

// RedisOpt holds the connection settings shared by the queue client and server
type RedisOpt struct {
	Addr     string
	Password string
	DB       int
}

func (o RedisOpt) clientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	}
}

func NewClient(opt RedisOpt) *asynq.Client {
	return asynq.NewClient(opt.clientOpt())
}

func NewServer(opt RedisOpt, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 5
	}

	return asynq.NewServer(
		opt.clientOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)
}
