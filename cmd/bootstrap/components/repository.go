package components

import (
	repo_impl "treebox/internal/infra/repository"
	"treebox/internal/usecase/commands"
	"treebox/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Session
		fx.Annotate(
			repo_impl.NewSessionRepository,
			fx.As(new(commands.SessionRepository)),
			fx.As(new(queries.SessionReadStore)),
		),
		// Room
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(commands.RoomRegistry)),
			fx.As(new(commands.RoomWriter)),
			fx.As(new(queries.RoomCatalog)),
			fx.As(new(queries.RoomReadStore)),
		),
		// Admin
		fx.Annotate(
			repo_impl.NewAdminRepository,
			fx.As(new(commands.AdminWriter)),
			fx.As(new(commands.CredentialReader)),
			fx.As(new(queries.AdminReadStore)),
		),
	),
)
