package commands

import (
	"context"

	"treebox/internal/domain/admin"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/errs"
	"treebox/internal/pkg/jwt"
	"treebox/internal/pkg/password"
	"treebox/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("failed to generate token")
)

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	Admin *queries.AdminView
}

type CredentialReader interface {
	FindByEmail(ctx context.Context, q db.Querier, email string) (*queries.AdminView, string, error)
}

type AuthCommands interface {
	Login(ctx context.Context, p LoginParams) (*LoginResult, error)
}

type authCommandsImpl struct {
	admins CredentialReader
	tokens *jwt.Service
	pool   *pgxpool.Pool
}

func NewAuthCommands(admins CredentialReader, tokens *jwt.Service, pool *pgxpool.Pool) AuthCommands {
	return &authCommandsImpl{admins: admins, tokens: tokens, pool: pool}
}

// Login checks credentials against the stored bcrypt hash and issues a
// signed token. Unknown email and wrong password both collapse into the
// same failure so the response never reveals which one it was.
func (c *authCommandsImpl) Login(ctx context.Context, p LoginParams) (*LoginResult, error) {
	view, hash, err := c.admins.FindByEmail(ctx, c.pool, p.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !view.IsActive {
		return nil, ErrAuthenticationFailed
	}

	if err := password.ComparePassword(hash, p.Password); err != nil {
		return nil, ErrAuthenticationFailed
	}

	role, err := admin.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	token, err := c.tokens.GenerateToken(view.ID, view.DisplayName, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{Token: token, Admin: view}, nil
}
