package cmd

import (
	"github.com/zhulik/pal"

	"miniblog/internal/core"
	"miniblog/internal/persistence"
	"miniblog/internal/persistence/blockedtags"
	"miniblog/internal/persistence/publications"
	"miniblog/internal/persistence/reactions"
	"miniblog/internal/persistence/users"
)

func persistenceServices() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.DB](&persistence.DB{}),
		pal.Provide[core.UserRepository](&users.Repository{}),
		pal.Provide[core.PublicationRepository](&publications.Repository{}),
		pal.Provide[core.ReactionLedger](&reactions.Ledger{}),
		pal.Provide[core.BlockedTagRepository](&blockedtags.Repository{}),
	)
}
