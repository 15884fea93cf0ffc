package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Decider is satisfied by the executor.
type Decider interface {
	Decide(ctx context.Context, req models.DecisionRequest) (models.DecisionResult, error)
}

type Consumer struct {
	client       *redis.Client
	stream       string
	resultStream string
	groupID      string
	consumerName string
	decider      Decider
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, decider Decider, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		decider:      decider,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("resultStream", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	if err := c.recoverPending(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			_ = c.process(ctx, msg)
		}
	}
}

// recoverPending replays messages this consumer read earlier but never
// ACKed. Each pending entry is retried once per start.
func (c *Consumer) recoverPending(ctx context.Context) error {
	lastID := "0"
	for {
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, lastID},
			Count:    10,
			Block:    -1,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if len(streams) == 0 || len(streams[0].Messages) == 0 {
			return nil
		}

		c.logger.Info().Int("count", len(streams[0].Messages)).Msg("Replaying pending messages")
		for _, msg := range streams[0].Messages {
			if err := c.process(ctx, msg); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			lastID = msg.ID
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

// process publishes exactly one outcome per message before ACKing it.
// Rejected requests are answered, never redelivered. A message whose
// outcome could not be published stays pending for redelivery.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) error {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	outcome := c.handle(ctx, msg)
	if ctx.Err() != nil {
		// shutting down: leave the message pending for redelivery
		return ctx.Err()
	}

	if err := c.publish(ctx, outcome); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish outcome, leaving message pending")
		return err
	}

	c.ack(ctx, msg.ID)
	return nil
}

func (c *Consumer) publish(ctx context.Context, outcome models.DecisionOutcome) error {
	if c.resultStream == "" {
		return nil
	}
	values, err := outcomeValues(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: values,
	}).Err()
}

func (c *Consumer) handle(ctx context.Context, msg redis.XMessage) models.DecisionOutcome {
	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		return models.DecisionOutcome{RequestID: msg.ID, Error: "missing payload field"}
	}

	var req models.DecisionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		return models.DecisionOutcome{RequestID: msg.ID, Error: "invalid payload: " + err.Error()}
	}
	if req.RequestID == "" {
		req.RequestID = msg.ID
	}

	result, err := c.decider.Decide(ctx, req)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", msg.ID).Msg("Decision rejected")
	} else {
		c.logger.Info().
			Str("id", msg.ID).
			Str("label", result.LabelName).
			Str("source", string(result.Source)).
			Msg("Decision complete")
	}
	return models.NewDecisionOutcome(req.RequestID, result, err)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

func outcomeValues(outcome models.DecisionOutcome) (map[string]any, error) {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return nil, err
	}
	status := "ok"
	if outcome.Error != "" {
		status = "error"
	}
	return map[string]any{
		"request_id": outcome.RequestID,
		"status":     status,
		"payload":    string(payload),
	}, nil
}
