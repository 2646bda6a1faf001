// Package reduce implements the log-reduction pipeline.
//
// The pipeline splits a raw log file into fixed-size, overlapping
// line-chunks, classifies each chunk against an error pattern library,
// summarizes the chunks that look normal, and writes a single reduced
// artifact where problem chunks carry diagnostic annotations and normal
// chunks are replaced by short summaries.
//
// Processing stages:
//
//	raw lines -> Split -> Classify | Summarize (parallel) -> ordered merge -> artifact
//
// Chunks are classified concurrently on a bounded worker pool; the only
// shared state is the read-only pattern library. Output order is always
// source order regardless of completion order.
//
// Usage:
//
//	pipe := reduce.New(
//	    reduce.WithChunkSize(5),
//	    reduce.WithOutputDir("processed"),
//	)
//
//	result, err := pipe.Process(ctx, "/var/log/app.log")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.ArtifactPath)
package reduce
