// Package loader reads comparison inputs: SQL scripts and table name
// mapping files.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Pair holds the source and target scripts of one comparison.
type Pair struct {
	SourcePath string
	TargetPath string
	Source     string
	Target     string
}

// ReadPair reads both scripts concurrently.
func ReadPair(ctx context.Context, sourcePath, targetPath string) (*Pair, error) {
	p := &Pair{SourcePath: sourcePath, TargetPath: targetPath}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		text, err := readScript(ctx, sourcePath)
		p.Source = text
		return err
	})
	eg.Go(func() error {
		text, err := readScript(ctx, targetPath)
		p.Target = text
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadScript reads one SQL script. The path "-" reads standard input.
func ReadScript(path string) (string, error) {
	return readScript(context.Background(), path)
}

func readScript(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is supplied by the user
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
