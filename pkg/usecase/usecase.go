package usecase

import (
	"time"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/service/cache"
)

// DefaultKissTTL bounds how long a kiss proposal can be answered
const DefaultKissTTL = 10 * time.Second

// DefaultTicketListLimit bounds member ticket listings
const DefaultTicketListLimit = 25

type UseCases struct {
	Kiss   *KissUseCase
	Ticket *TicketUseCase
}

type Option func(*config)

type config struct {
	kissTTL  time.Duration
	kissGifs []string
}

// WithKissTTL overrides the proposal TTL
func WithKissTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.kissTTL = ttl
	}
}

// WithKissGifs sets the GIF catalog for kiss responses
func WithKissGifs(gifs []string) Option {
	return func(c *config) {
		c.kissGifs = gifs
	}
}

func New(repo interfaces.Repository, kvs interfaces.KeyValueStore, opts ...Option) *UseCases {
	cfg := &config{
		kissTTL: DefaultKissTTL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &UseCases{
		Kiss:   NewKissUseCase(cache.NewCorrelation[model.KissProposal](kvs, cfg.kissTTL), cfg.kissGifs),
		Ticket: NewTicketUseCase(repo.Ticket()),
	}
}
