package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authapp "github.com/campushub/user-gateway/internal/application/auth"
	app "github.com/campushub/user-gateway/internal/application/user"
	"github.com/campushub/user-gateway/internal/config"
	"github.com/campushub/user-gateway/internal/domain/user"
	"github.com/campushub/user-gateway/internal/infrastructure/auth0"
	infrafile "github.com/campushub/user-gateway/internal/infrastructure/file"
	"github.com/campushub/user-gateway/internal/infrastructure/repository"
	httpecho "github.com/campushub/user-gateway/internal/interfaces/http/echo"
)

// Dependencies are the process-level resources the HTTP server composes.
type Dependencies struct {
	Config    *config.Config
	Log       *zap.Logger
	DB        *gorm.DB
	Pool      *pgxpool.Pool
	Directory user.DirectoryClient
	Tokens    *auth0.TokenClient
	Verifier  httpecho.TokenVerifier
}

func NewHTTPServer(deps Dependencies) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(deps.Config.Upload.MaxFileSize))

	pacing := app.PacingPolicy{
		Every: deps.Config.Batch.PaceEvery,
		Pause: deps.Config.Batch.Pause(),
	}
	audit := repository.NewBatchAuditRepository(deps.DB, deps.Pool)

	createUser := app.NewCreateUser(deps.Directory)
	getUser := app.NewGetUserByEmail(deps.Directory)
	listUsers := app.NewListUsers(deps.Directory)
	updateUser := app.NewUpdateUser(deps.Directory)
	deleteUser := app.NewDeleteUser(deps.Directory)
	bulkCreate := app.NewBulkCreateUsers(deps.Directory, audit, pacing, deps.Log)
	bulkDelete := app.NewBulkDeleteUsers(deps.Directory, audit, pacing, deps.Log)
	getToken := authapp.NewGetAccessToken(deps.Tokens)

	uploads := infrafile.NewUploadStore(deps.Config.Upload.Dir)
	newSource := func(path string) (app.RecordSource, error) {
		return infrafile.NewRecordSource(path)
	}

	authHandler := httpecho.NewAuthHandler(getToken)
	userHandler := httpecho.NewUserHandler(createUser, getUser, listUsers, updateUser, deleteUser)
	bulkHandler := httpecho.NewBulkHandler(bulkCreate, bulkDelete, uploads, newSource)

	httpecho.RegisterRoutes(server, authHandler, userHandler, bulkHandler, httpecho.RequireAuth(deps.Verifier))

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
