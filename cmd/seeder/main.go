package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/bloghub/internal/auth"
	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/config"
	"github.com/2beens/bloghub/internal/db"
	"github.com/2beens/bloghub/internal/logging"
	"github.com/2beens/bloghub/internal/seed"
	"github.com/2beens/bloghub/internal/users"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	usersCount := flag.Int("users", 50, "number of fake users to create")
	followsPerUser := flag.Int("follows", 5, "follows per user")
	blogsPerUser := flag.Int("blogs", 2, "blog attempts per user, subject to the daily quota")
	commentsPerUser := flag.Int("comments", 3, "comment attempts per user, subject to the daily quota")
	randSeed := flag.Int64("seed", 0, "fake data seed, 0 means random")
	sessions := flag.Int("sessions", 0, "issue session tokens for the first N users")
	sessionTTL := flag.Duration("session-ttl", 24*time.Hour, "ttl of issued session tokens")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}
	if cfg.Storage != config.StoragePostgres {
		fmt.Println("memory storage is seeded by the service itself, see memory_seed_users")
		os.Exit(1)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("BLOGHUB_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if cfg.ApplySchema {
		if err := db.ApplySchema(ctx, dbPool); err != nil {
			log.Fatalf("apply schema: %s", err)
		}
	}

	usersRepo := users.NewRepo(dbPool)
	guard := blog.NewGuard(blog.GuardParams{
		Store: blog.NewRepo(dbPool),
		Users: usersRepo,
		Limits: blog.Limits{
			BlogsPerDay:    cfg.BlogsPerDay,
			CommentsPerDay: cfg.CommentsPerDay,
		},
	})

	var mirror seed.FollowMirror
	if cfg.FollowsSource == config.FollowsSourceNeo4j {
		driver, err := users.NewNeo4jDriver(ctx, cfg.Neo4jURI, cfg.Neo4jUser, os.Getenv("NEO4J_PASSWORD"))
		if err != nil {
			log.Fatalf("neo4j driver: %s", err)
		}
		defer func() {
			if err := driver.Close(context.Background()); err != nil {
				log.Errorf("close neo4j driver: %s", err)
			}
		}()
		mirror = users.NewGraphFollows(driver, cfg.Neo4jDatabase)
		log.Infof("follows are mirrored to neo4j at %s", cfg.Neo4jURI)
	}

	report, err := seed.NewSeeder(usersRepo, guard, mirror, *randSeed).Run(ctx, seed.Params{
		Users:           *usersCount,
		FollowsPerUser:  *followsPerUser,
		BlogsPerUser:    *blogsPerUser,
		CommentsPerUser: *commentsPerUser,
		Tags:            seed.DefaultTags,
	})
	if err != nil {
		log.Fatalf("seed: %s", err)
	}
	log.Infof("seeded: %s", report)

	if *sessions <= 0 {
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("BLOGHUB_REDIS_PASS"),
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	tokens, err := seed.IssueSessions(
		ctx,
		auth.NewSessionStore(rdb),
		report.Usernames[:min(*sessions, len(report.Usernames))],
		*sessionTTL,
	)
	if err != nil {
		log.Fatalf("issue sessions: %s", err)
	}
	for username, token := range tokens {
		fmt.Printf("%s\t%s: %s\n", username, auth.TokenHeader, token)
	}
}
