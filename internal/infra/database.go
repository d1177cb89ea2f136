package infra

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/danisworo/storefront/internal/config"
	"github.com/danisworo/storefront/internal/log"
	"github.com/danisworo/storefront/internal/repository"
)

func NewDatabaseClient(c context.Context, dbConfig config.Database) *mongo.Database {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main NewDatabaseClient").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing mongoUri").Logger()
	logger.Info().Msg("initializing mongoUri")
	mongoUri := fmt.Sprintf("mongodb://%s:%d", dbConfig.Host, int(dbConfig.Port))
	if dbConfig.Username != "" {
		mongoUri = fmt.Sprintf(
			"mongodb://%s:%s@%s:%d",
			dbConfig.Username,
			dbConfig.Password,
			dbConfig.Host,
			int(dbConfig.Port),
		)
	}
	logger = logger.With().Str(log.KeyDbURI, mongoUri).Logger()
	logger.Info().Msg("initialized mongoUri")

	logger = logger.With().Str(log.KeyProcess, "connecting to database").Logger()
	logger.Info().Msg("connecting to database")
	opts := options.Client().
		ApplyURI(mongoUri).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(dbConfig.MaxPoolSize).
		SetMinPoolSize(dbConfig.MinPoolSize)
	client, err := mongo.Connect(c, opts)
	if err != nil {
		err = fmt.Errorf("failed connecting to database with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("connected to database")

	logger = logger.With().Str(log.KeyProcess, "ping db").Logger()
	logger.Info().Msg("ping db")
	err = client.Ping(c, readpref.Primary())
	if err != nil {
		err = fmt.Errorf("failed ping db with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("successed ping db")

	db := client.Database(dbConfig.Name)

	logger = logger.With().Str(log.KeyProcess, "creating indexes").Logger()
	logger.Info().Msg("creating indexes")
	err = repository.EnsureIndexes(c, db)
	if err != nil {
		err = fmt.Errorf("failed creating indexes with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("created indexes")

	return db
}
