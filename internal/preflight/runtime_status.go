package preflight

import (
	"context"
	"fmt"
	"strings"

	"lafter/internal/keywords"
	"lafter/internal/queue"
	"lafter/internal/titlemodel"
)

// CheckModel loads the model artifact and reports its vocabulary size.
func CheckModel(path string) Result {
	const name = "Model artifact"

	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "missing path"}
	}
	model, err := titlemodel.Load(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d features)", path, model.Size())}
}

// CheckKeywords loads the keyword table. An empty path reports the
// embedded default table.
func CheckKeywords(path string) Result {
	const name = "Keyword table"

	table, err := keywords.Load(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	source := path
	if strings.TrimSpace(source) == "" {
		source = "built-in"
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d positive, %d negative)", source, len(table.Positive), len(table.Negative)),
	}
}

// CheckQueue opens the queue database and inspects its schema and integrity.
func CheckQueue(ctx context.Context, dbPath string) Result {
	const name = "Queue database"

	store, err := queue.OpenPath(dbPath)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	health, err := store.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	switch {
	case !health.TableExists:
		return Result{Name: name, Detail: fmt.Sprintf("%s (videos table missing)", dbPath)}
	case len(health.MissingColumns) > 0:
		return Result{Name: name, Detail: fmt.Sprintf("%s (missing columns: %s)", dbPath, strings.Join(health.MissingColumns, ", "))}
	case !health.IntegrityCheck:
		return Result{Name: name, Detail: fmt.Sprintf("%s (integrity check failed)", dbPath)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (schema v%d, %d videos)", dbPath, health.SchemaVersion, health.TotalItems),
	}
}
