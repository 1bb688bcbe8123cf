package testing

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/2beens/bloghub/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
)

const testDBName = "bloghub_test"

// PostgresContainer is a throwaway postgres started with dockertest,
// with the bloghub schema already applied.
type PostgresContainer struct {
	Port string
	Pool *pgxpool.Pool

	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
}

func (c *PostgresContainer) PoolParams() db.NewDBPoolParams {
	return db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: c.Port,
		DBName: testDBName,
	}
}

// Truncate removes all rows, leaving the schema in place.
func (c *PostgresContainer) Truncate(t *testing.T) {
	t.Helper()
	_, err := c.Pool.Exec(
		context.Background(),
		`TRUNCATE comment, blog_tag, blog, follow, users RESTART IDENTITY CASCADE`,
	)
	require.NoError(t, err)
}

func (c *PostgresContainer) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.resource != nil {
		if err := c.dockerPool.Purge(c.resource); err != nil {
			fmt.Printf("postgres teardown: %s\n", err)
		}
	}
}

func StartPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not create new dockertest pool")
	require.NoError(t, dockerPool.Client.Ping(), "could not ping dockertest pool")
	dockerPool.MaxWait = time.Minute

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err, "dockerpool run postgres")

	container := &PostgresContainer{
		Port:       resource.GetPort("5432/tcp"),
		dockerPool: dockerPool,
		resource:   resource,
	}

	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/%s?sslmode=disable", container.Port, testDBName)
	var sqlDB *sql.DB
	if err := dockerPool.Retry(func() error {
		var err error
		sqlDB, err = sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		container.Close()
		t.Fatalf("connect to db: %s", err)
	}
	defer sqlDB.Close()

	if _, err := sqlDB.Exec(db.Schema); err != nil {
		container.Close()
		t.Fatalf("apply schema: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	container.Pool, err = db.NewDBPool(ctx, container.PoolParams())
	if err != nil {
		container.Close()
		t.Fatalf("new db pool: %s", err)
	}

	return container
}
