// Package cinedex embeds the cinedex movie discovery engine in a Go program.
//
// The client talks to the same Postgres catalog (pg_trgm and pgvector) as the
// HTTP service and runs the ranking in-process:
//
//	client, _ := cinedex.New(ctx,
//	    cinedex.WithPostgres("postgres://localhost:5432/movies"),
//	    cinedex.WithRedis("localhost:6379", ""),
//	)
//	defer client.Close()
//
//	movies, _ := client.Search(ctx, "heat 1995")
//	feed, _ := client.Trending(ctx, 20)
//	page, _ := client.Similar(ctx, 949, 1, 10)
//
// Redis is optional. Without it trending pools are rebuilt from the catalog
// on every call and live query embeddings are not cached.
package cinedex
