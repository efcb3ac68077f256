package usecase

import (
	"context"
	"math/rand/v2"

	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/service/cache"
	"github.com/amora-bot/amora/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// KissUseCase implements the /kiss command: the initial proposal and the
// target's later accept/decline answer. The two exchanges are bridged only by
// the correlation record; no in-process state survives between them.
type KissUseCase struct {
	proposals *cache.Correlation[model.KissProposal]
	gifs      []string
}

func NewKissUseCase(proposals *cache.Correlation[model.KissProposal], gifs []string) *KissUseCase {
	return &KissUseCase{
		proposals: proposals,
		gifs:      gifs,
	}
}

// Propose handles the initial command. A self-kiss needs no follow-up, so no
// record is issued and the invite carries no correlation id. Otherwise the
// proposal is stashed for its TTL and the id is returned for embedding into
// the response controls.
func (uc *KissUseCase) Propose(ctx context.Context, issuerID, targetID types.Snowflake, replyToken string) (*model.KissInvite, error) {
	gif, err := uc.pickGif()
	if err != nil {
		return nil, err
	}

	invite := &model.KissInvite{
		IssuerID: issuerID,
		TargetID: targetID,
		GifURL:   gif,
	}

	if invite.Self() {
		return invite, nil
	}

	id, err := uc.proposals.Issue(ctx, &model.KissProposal{
		IssuerID:   issuerID,
		TargetID:   targetID,
		ReplyToken: replyToken,
	})
	if err != nil {
		return nil, errutil.Handle(ctx, err, "failed to issue kiss proposal")
	}

	invite.CorrelationID = id
	return invite, nil
}

// Answer resolves a proposal for an accept or decline click. Authorization is
// checked against a non-consuming read first so a stranger's click cannot
// burn the record; the atomic consume then decides the winner between two
// racing answers, and the loser observes types.ErrExpired. The follow-up side
// effect must only happen after Answer returns the proposal.
func (uc *KissUseCase) Answer(ctx context.Context, id types.CorrelationID, actorID types.Snowflake) (*model.KissProposal, error) {
	peeked, err := uc.proposals.Peek(ctx, id)
	if err != nil {
		return nil, err
	}

	if peeked.TargetID != actorID {
		return nil, goerr.Wrap(ErrNotYourKiss, "answer rejected",
			goerr.V("actor_id", actorID.String()))
	}

	proposal, err := uc.proposals.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	return proposal, nil
}

func (uc *KissUseCase) pickGif() (string, error) {
	if len(uc.gifs) == 0 {
		return "", goerr.Wrap(ErrNoGifAvailable, "kiss gif catalog is empty")
	}
	return uc.gifs[rand.IntN(len(uc.gifs))], nil
}
