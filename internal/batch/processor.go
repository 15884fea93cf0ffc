package batch

import (
	"context"
	"sync"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/rs/zerolog"
)

type Decider interface {
	Decide(ctx context.Context, req models.DecisionRequest) (models.DecisionResult, error)
}

// OutputRecord pairs an outcome with the input line it came from.
type OutputRecord struct {
	LineNumber int `json:"line"`
	models.DecisionOutcome
}

// Processor fans records out over a fixed number of workers. Every input
// record yields exactly one output record.
type Processor struct {
	decider Decider
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(decider Decider, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		decider: decider,
		workers: workers,
		logger:  logger,
	}
}

func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan OutputRecord {
	jobs := make(chan InputRecord)
	results := make(chan OutputRecord, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for record := range jobs {
				results <- p.processOne(ctx, record)
			}
			p.logger.Debug().Int("worker", worker).Msg("Worker finished")
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			jobs <- record
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) OutputRecord {
	out := OutputRecord{LineNumber: record.LineNumber}
	if record.Error != nil {
		out.DecisionOutcome = models.DecisionOutcome{
			RequestID: record.Request.RequestID,
			Error:     record.Error.Error(),
		}
		return out
	}

	result, err := p.decider.Decide(ctx, record.Request)
	if err != nil {
		p.logger.Warn().Err(err).Int("line", record.LineNumber).Msg("Decision rejected")
	}
	out.DecisionOutcome = models.NewDecisionOutcome(record.Request.RequestID, result, err)
	return out
}
