package users

import (
	"context"
	"fmt"
	"slices"

	"github.com/2beens/bloghub/internal/telemetry/tracing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel/attribute"
)

var _ FollowReader = (*GraphFollows)(nil)

type queryRunner func(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error)

// GraphFollows reads the follow graph from neo4j, where users are
// (:User {username}) nodes linked by [:FOLLOWS] relationships.
type GraphFollows struct {
	run queryRunner
}

func NewGraphFollows(driver neo4j.DriverWithContext, database string) *GraphFollows {
	return &GraphFollows{
		run: func(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
			return neo4j.ExecuteQuery(
				ctx,
				driver,
				cypher,
				params,
				neo4j.EagerResultTransformer,
				neo4j.ExecuteQueryWithDatabase(database),
			)
		},
	}
}

func NewNeo4jDriver(ctx context.Context, uri, username, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return driver, nil
}

func (g *GraphFollows) Following(ctx context.Context, username string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "graph.users.following")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	result, err := g.run(ctx, `
		MATCH (:User {username: $username})-[:FOLLOWS]->(f:User)
		RETURN DISTINCT f.username AS username
	`, map[string]any{"username": username})
	if err != nil {
		return nil, fmt.Errorf("query following: %w", err)
	}

	following := make([]string, 0, len(result.Records))
	for _, record := range result.Records {
		followee, _, err := neo4j.GetRecordValue[string](record, "username")
		if err != nil {
			return nil, fmt.Errorf("read followee: %w", err)
		}
		following = append(following, followee)
	}
	slices.Sort(following)
	return following, nil
}

// SyncFollow mirrors a follow edge into the graph.
func (g *GraphFollows) SyncFollow(ctx context.Context, follower, followee string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "graph.users.sync-follow")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	if _, err := g.run(ctx, `
		MERGE (a:User {username: $follower})
		MERGE (b:User {username: $followee})
		MERGE (a)-[:FOLLOWS]->(b)
	`, map[string]any{
		"follower": follower,
		"followee": followee,
	}); err != nil {
		return fmt.Errorf("sync follow: %w", err)
	}
	return nil
}
