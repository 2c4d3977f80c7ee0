package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
)

// File reads the last Tail lines of a local file. A missing file yields no
// lines rather than an error so a feed can appear later.
type File struct {
	Path string
	Tail int
}

func (f *File) Name() string {
	return f.Path
}

// Fetch keeps a ring of the last Tail lines while scanning the file.
func (f *File) Fetch(ctx context.Context) ([]string, error) {
	if f.Tail <= 0 {
		return nil, nil
	}
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer file.Close()

	ring := make([]string, f.Tail)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next, seen := 0, 0, 0
	for scanner.Scan() {
		seen++
		if seen%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ring[next] = scanner.Text()
		next = (next + 1) % f.Tail
		if count < f.Tail {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	lines := make([]string, count)
	if count < f.Tail {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := range lines {
		lines[i] = ring[(next+i)%f.Tail]
	}
	return lines, nil
}
