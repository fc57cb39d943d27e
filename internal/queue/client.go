package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/hartlaw-ai/lexrag/internal/config"
)

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) EnqueueCorpusFetch(payload CorpusFetchPayload) error {
	return c.enqueue(TypeCorpusFetch, payload, asynq.MaxRetry(3), asynq.Timeout(15*time.Minute))
}

func (c *Client) EnqueueRegulationFetch(payload RegulationFetchPayload) error {
	return c.enqueue(TypeRegulationFetch, payload, asynq.MaxRetry(3), asynq.Timeout(10*time.Minute))
}

func (c *Client) EnqueueSampleCorpusLoad() error {
	return c.enqueue(TypeSampleCorpusLoad, struct{}{}, asynq.MaxRetry(1), asynq.Timeout(5*time.Minute))
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(taskType, data)
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
