package model

import (
	"github.com/amora-bot/amora/pkg/domain/types"
)

// KissProposal is the correlation record bridging a /kiss command response and
// the target's later button click. It lives in the key-value store for the
// proposal TTL only.
//
// ReplyToken is the credential for emitting a follow-up response on the
// original interaction. It must never be logged or shown to other principals;
// the logger redacts it by field name.
type KissProposal struct {
	IssuerID   types.Snowflake `json:"issuer_id"`
	TargetID   types.Snowflake `json:"target_id"`
	ReplyToken string          `json:"reply_token"`
}

// KissInvite is the response payload for a /kiss command. CorrelationID is
// empty for a self-kiss, which offers no follow-up controls.
type KissInvite struct {
	IssuerID      types.Snowflake
	TargetID      types.Snowflake
	GifURL        string
	CorrelationID types.CorrelationID
}

// Self reports whether the invite is a self-kiss
func (x *KissInvite) Self() bool {
	return x.IssuerID == x.TargetID
}
