package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/service/cache"
	"github.com/m-mizutani/gt"
)

func TestCorrelation(t *testing.T) {
	mini := miniredis.RunT(t)
	ctx := context.Background()

	newStore := func(t *testing.T, ttl time.Duration) *cache.Correlation[model.KissProposal] {
		t.Helper()
		kvs := cache.NewRedis(mini.Addr(), "", 0)
		t.Cleanup(func() {
			if err := kvs.Close(); err != nil {
				t.Errorf("failed to close redis store: %v", err)
			}
		})
		return cache.NewCorrelation[model.KissProposal](kvs, ttl)
	}

	t.Run("Issue then Resolve returns the same state", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		state := &model.KissProposal{
			IssuerID:   297153970613387264,
			TargetID:   518402263697129473,
			ReplyToken: "aW50ZXJhY3Rpb24tdG9rZW4",
		}

		id, err := store.Issue(ctx, state)
		gt.NoError(t, err).Required()
		gt.NoError(t, id.Validate())

		got, err := store.Resolve(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, got.IssuerID).Equal(state.IssuerID)
		gt.Value(t, got.TargetID).Equal(state.TargetID)
		gt.Value(t, got.ReplyToken).Equal(state.ReplyToken)
	})

	t.Run("second Resolve of the same id fails", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		id, err := store.Issue(ctx, &model.KissProposal{IssuerID: 1, TargetID: 2, ReplyToken: "tok"})
		gt.NoError(t, err).Required()

		_, err = store.Resolve(ctx, id)
		gt.NoError(t, err).Required()

		_, err = store.Resolve(ctx, id)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})

	t.Run("Resolve after TTL fails", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		id, err := store.Issue(ctx, &model.KissProposal{IssuerID: 1, TargetID: 2, ReplyToken: "tok"})
		gt.NoError(t, err).Required()

		mini.FastForward(11 * time.Second)

		_, err = store.Resolve(ctx, id)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})

	t.Run("Resolve of a never-issued id fails identically", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		_, err := store.Resolve(ctx, types.NewCorrelationID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})

	t.Run("malformed id fails without touching the store", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		_, err := store.Resolve(ctx, types.CorrelationID("garbage"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})

	t.Run("Peek does not consume the record", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		id, err := store.Issue(ctx, &model.KissProposal{IssuerID: 7, TargetID: 8, ReplyToken: "tok"})
		gt.NoError(t, err).Required()

		peeked, err := store.Peek(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, peeked.IssuerID).Equal(types.Snowflake(7))

		got, err := store.Resolve(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, got.TargetID).Equal(types.Snowflake(8))
	})

	t.Run("record survives within TTL then is consumed exactly once", func(t *testing.T) {
		store := newStore(t, 10*time.Second)

		id, err := store.Issue(ctx, &model.KissProposal{
			IssuerID:   10,
			TargetID:   20,
			ReplyToken: "T",
		})
		gt.NoError(t, err).Required()

		mini.FastForward(1 * time.Second)

		got, err := store.Resolve(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, got.IssuerID).Equal(types.Snowflake(10))
		gt.Value(t, got.TargetID).Equal(types.Snowflake(20))
		gt.Value(t, got.ReplyToken).Equal("T")

		mini.FastForward(1 * time.Second)

		_, err = store.Resolve(ctx, id)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpired)).True()
	})
}
