package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// bulkDeleteConcurrency caps parallel document deletes in DeleteByMember
const bulkDeleteConcurrency = 8

type ticketRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTicketRepository(client *firestore.Client) *ticketRepository {
	return &ticketRepository{
		client: client,
	}
}

func (r *ticketRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tickets"
	}
	return "tickets"
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*model.Ticket, error) {
	ticketID, err := types.ParseTicketID(id)
	if err != nil {
		return nil, err
	}

	docSnap, err := r.client.Collection(r.collection()).Doc(ticketID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "ticket not found", goerr.V("id", id))
		}
		return nil, errutil.Handle(ctx, wrapStorageErr(err, "failed to get ticket", goerr.V("id", id)), "ticket lookup failed")
	}

	var ticket model.Ticket
	if err := docSnap.DataTo(&ticket); err != nil {
		return nil, errutil.Handle(ctx, wrapStorageErr(err, "failed to decode ticket", goerr.V("id", id)), "ticket decode failed")
	}

	return &ticket, nil
}

func (r *ticketRepository) ListByMember(ctx context.Context, guildID, userID types.Snowflake, limit int) ([]*model.Ticket, error) {
	tickets := []*model.Ticket{}
	if limit <= 0 {
		return tickets, nil
	}

	// Newest first, backed by the composite index on
	// (guild_id, user_id, created_at).
	iter := r.client.Collection(r.collection()).
		Where("guild_id", "==", guildID.Int64()).
		Where("user_id", "==", userID.Int64()).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	for len(tickets) < limit {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Partial results are discarded: callers must never see a
			// maybe-complete list.
			return nil, errutil.Handle(ctx,
				wrapStorageErr(err, "failed to iterate tickets",
					goerr.V("guild_id", guildID.String()), goerr.V("user_id", userID.String())),
				"ticket query failed")
		}

		var ticket model.Ticket
		if err := docSnap.DataTo(&ticket); err != nil {
			return nil, errutil.Handle(ctx,
				wrapStorageErr(err, "failed to decode ticket", goerr.V("doc_id", docSnap.Ref.ID)),
				"ticket decode failed")
		}

		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}

func (r *ticketRepository) Create(ctx context.Context, data model.CreateTicketData) (*model.Ticket, error) {
	ticket := model.NewTicket(data)

	if _, err := r.client.Collection(r.collection()).Doc(ticket.ID.String()).Set(ctx, ticket); err != nil {
		return nil, errutil.Handle(ctx,
			wrapStorageErr(err, "failed to create ticket", goerr.V("id", ticket.ID)),
			"ticket insert failed")
	}

	return ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	ticketID, err := types.ParseTicketID(id)
	if err != nil {
		return err
	}

	docRef := r.client.Collection(r.collection()).Doc(ticketID.String())

	// Firestore deletes are silent on missing documents, but single-id delete
	// must report that nothing existed to remove.
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "ticket not found", goerr.V("id", id))
		}
		return errutil.Handle(ctx, wrapStorageErr(err, "failed to get ticket", goerr.V("id", id)), "ticket lookup failed")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return errutil.Handle(ctx, wrapStorageErr(err, "failed to delete ticket", goerr.V("id", id)), "ticket delete failed")
	}

	return nil
}

func (r *ticketRepository) DeleteByMember(ctx context.Context, guildID, userID types.Snowflake) (int64, error) {
	iter := r.client.Collection(r.collection()).
		Where("guild_id", "==", guildID.Int64()).
		Where("user_id", "==", userID.Int64()).
		Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, errutil.Handle(ctx,
				wrapStorageErr(err, "failed to iterate tickets for bulk delete",
					goerr.V("guild_id", guildID.String()), goerr.V("user_id", userID.String())),
				"ticket bulk delete failed")
		}
		refs = append(refs, docSnap.Ref)
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(bulkDeleteConcurrency)
	for _, ref := range refs {
		grp.Go(func() error {
			if _, err := ref.Delete(grpCtx); err != nil {
				return wrapStorageErr(err, "failed to delete ticket", goerr.V("doc_id", ref.ID))
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, errutil.Handle(ctx, err, "ticket bulk delete failed")
	}

	return int64(len(refs)), nil
}

func wrapStorageErr(err error, msg string, values ...goerr.Option) error {
	tag := types.TagStorage
	if status.Code(err) == codes.Unavailable || status.Code(err) == codes.DeadlineExceeded {
		tag = types.TagUnavailable
	}
	opts := append([]goerr.Option{goerr.T(tag)}, values...)
	return goerr.Wrap(err, msg, opts...)
}
