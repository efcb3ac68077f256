package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/repository/memory"
	"github.com/amora-bot/amora/pkg/service/cache"
	"github.com/amora-bot/amora/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()

	base := append([]usecase.Option{
		usecase.WithKissGifs([]string{"https://example.com/kiss1.gif", "https://example.com/kiss2.gif"}),
	}, opts...)

	return usecase.New(memory.New(), cache.NewMemory(), base...)
}

func TestKissPropose(t *testing.T) {
	ctx := context.Background()

	t.Run("proposal to another member carries a correlation id", func(t *testing.T) {
		uc := newUseCases(t)

		invite, err := uc.Kiss.Propose(ctx, 100, 200, "reply-token")
		gt.NoError(t, err).Required()

		gt.Bool(t, invite.Self()).False()
		gt.Value(t, invite.CorrelationID).NotEqual(types.CorrelationID(""))
		gt.NoError(t, invite.CorrelationID.Validate())
		gt.Value(t, invite.GifURL).NotEqual("")
	})

	t.Run("self-kiss issues no record", func(t *testing.T) {
		uc := newUseCases(t)

		invite, err := uc.Kiss.Propose(ctx, 100, 100, "reply-token")
		gt.NoError(t, err).Required()

		gt.Bool(t, invite.Self()).True()
		gt.Value(t, invite.CorrelationID).Equal(types.CorrelationID(""))
	})

	t.Run("empty gif catalog fails", func(t *testing.T) {
		uc := usecase.New(memory.New(), cache.NewMemory())

		_, err := uc.Kiss.Propose(ctx, 100, 200, "reply-token")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNoGifAvailable)).True()
	})
}

func TestKissAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("target's answer returns the stored proposal once", func(t *testing.T) {
		uc := newUseCases(t)

		invite, err := uc.Kiss.Propose(ctx, 100, 200, "reply-token")
		gt.NoError(t, err).Required()

		proposal, err := uc.Kiss.Answer(ctx, invite.CorrelationID, 200)
		gt.NoError(t, err).Required()
		gt.Value(t, proposal.IssuerID).Equal(types.Snowflake(100))
		gt.Value(t, proposal.TargetID).Equal(types.Snowflake(200))
		gt.Value(t, proposal.ReplyToken).Equal("reply-token")

		_, err = uc.Kiss.Answer(ctx, invite.CorrelationID, 200)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})

	t.Run("a stranger's click does not consume the record", func(t *testing.T) {
		uc := newUseCases(t)

		invite, err := uc.Kiss.Propose(ctx, 100, 200, "reply-token")
		gt.NoError(t, err).Required()

		_, err = uc.Kiss.Answer(ctx, invite.CorrelationID, 300)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNotYourKiss)).True()

		// the target can still answer afterwards
		proposal, err := uc.Kiss.Answer(ctx, invite.CorrelationID, 200)
		gt.NoError(t, err).Required()
		gt.Value(t, proposal.ReplyToken).Equal("reply-token")
	})

	t.Run("unknown correlation id yields ErrExpired", func(t *testing.T) {
		uc := newUseCases(t)

		_, err := uc.Kiss.Answer(ctx, types.NewCorrelationID(), 200)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})

	t.Run("answer after TTL yields ErrExpired", func(t *testing.T) {
		uc := newUseCases(t, usecase.WithKissTTL(time.Nanosecond))

		invite, err := uc.Kiss.Propose(ctx, 100, 200, "reply-token")
		gt.NoError(t, err).Required()

		time.Sleep(time.Millisecond)

		_, err = uc.Kiss.Answer(ctx, invite.CorrelationID, 200)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})
}
