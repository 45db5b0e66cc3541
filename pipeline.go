package palgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/palgen/palette"
)

const (
	palExt     = ".pal"
	numWorkers = 4
)

type decoded struct {
	name    string
	file    string
	palette palette.Palette
}

func (p *PalGen) findPalettes(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), palExt) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *PalGen) decodeWorker(ctx context.Context, wg *sync.WaitGroup, in <-chan string, out chan<- decoded) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for file := range in {
			pal, err := p.decodeFile(file)
			if err != nil {
				errc <- err
				return
			}

			d := decoded{
				name:    strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
				file:    file,
				palette: pal,
			}

			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

func (p *PalGen) storeWorker(in <-chan decoded) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for d := range in {
			changed, err := p.db.Add(d.name, d.palette)
			if err != nil {
				errc <- err
				// Drain so the decoders don't block
				for range in {
				}
				return
			}
			if changed {
				p.logger.Printf("Imported \"%s\" as \"%s\"\n", d.file, d.name)
			} else {
				p.logger.Printf("Palette \"%s\" is unchanged\n", d.name)
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree at path and imports every palette file found,
// each named after its filename without the extension. Where two files share
// a name the last one stored wins.
func (p *PalGen) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findPalettes(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	decodedc := make(chan decoded)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		errc, err := p.decodeWorker(ctx, &wg, files, decodedc)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}
	go func() {
		wg.Wait()
		close(decodedc)
	}()

	errc, err = p.storeWorker(decodedc)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	return waitForPipeline(cancelFunc, errcList...)
}
