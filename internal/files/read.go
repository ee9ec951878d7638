// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/mdtasks/internal/extract"
	"github.com/pdiddy/mdtasks/internal/walk"
)

// ReadResult is the outcome of reading one requested file. Content is set
// on success and Error on failure.
type ReadResult struct {
	FilePath string  `json:"file_path" yaml:"file_path"`
	FileName string  `json:"file_name" yaml:"file_name"`
	Success  bool    `json:"success" yaml:"success"`
	Content  *string `json:"content,omitempty" yaml:"content,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// ReadResponse is the answer to Read. Files follow request order.
type ReadResponse struct {
	Files          []ReadResult `json:"files" yaml:"files"`
	TotalRequested int          `json:"total_requested" yaml:"total_requested"`
	SuccessCount   int          `json:"success_count" yaml:"success_count"`
	FailureCount   int          `json:"failure_count" yaml:"failure_count"`
}

// ReadOptions configures Read. Only files with one of the walk extensions
// may be read; Workers bounds concurrent reads.
type ReadOptions struct {
	walk.Options

	// ContinueOnError records per-file failures in the response instead of
	// failing the whole request.
	ContinueOnError bool
}

// Read returns the contents of the files at paths, each relative to root.
// Without ContinueOnError every path is checked before any file is read
// and the first problem is returned as an error.
func Read(ctx context.Context, root string, paths []string, opts ReadOptions) (ReadResponse, error) {
	if len(paths) == 0 {
		return ReadResponse{}, fmt.Errorf("%w: no files requested", ErrInvalidPath)
	}
	if !opts.ContinueOnError {
		for _, p := range paths {
			if _, err := checkReadable(root, p, opts.Options); err != nil {
				return ReadResponse{}, err
			}
		}
	}

	mapper := iter.Mapper[string, ReadResult]{MaxGoroutines: opts.Concurrency()}
	results, err := mapper.MapErr(paths, func(p *string) (ReadResult, error) {
		if err := ctx.Err(); err != nil {
			return ReadResult{}, err
		}
		res := ReadResult{FilePath: *p, FileName: filepath.Base(filepath.FromSlash(*p))}
		content, err := readOne(root, *p, opts.Options)
		if err != nil {
			if !opts.ContinueOnError {
				return ReadResult{}, err
			}
			res.Error = err.Error()
			return res, nil
		}
		res.Success = true
		res.Content = &content
		return res, nil
	})
	if err != nil {
		return ReadResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return ReadResponse{}, err
	}

	resp := ReadResponse{Files: results, TotalRequested: len(paths)}
	for _, r := range results {
		if r.Success {
			resp.SuccessCount++
		} else {
			resp.FailureCount++
		}
	}
	return resp, nil
}

func checkReadable(root, rel string, opts walk.Options) (string, error) {
	full, err := Resolve(root, rel)
	if err != nil {
		return "", err
	}
	if !opts.Selects(full) {
		return "", fmt.Errorf("%w: %s: unsupported file type", ErrInvalidPath, rel)
	}
	return full, nil
}

func readOne(root, rel string, opts walk.Options) (string, error) {
	full, err := checkReadable(root, rel, opts)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: %w", rel, extract.ErrInvalidEncoding)
	}
	return string(data), nil
}
