// Package driver loads source files, runs front-ends and renders the trees.
package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"astpretty/internal/frontend"
	"astpretty/internal/observ"
	"astpretty/internal/pretty"
	"astpretty/internal/query"
	"astpretty/internal/source"
	"astpretty/internal/trace"
	"astpretty/internal/tree"
)

// StdinPath as Request.Path reads a single document from Request.Stdin.
const StdinPath = "-"

const stdinName = "<stdin>"

// Request describes one run.
type Request struct {
	// Path is a file, a directory or StdinPath.
	Path string
	// Stdin is read when Path is StdinPath. Nil means os.Stdin.
	Stdin io.Reader
	// Frontend forces a front-end by name. Empty picks one by extension.
	Frontend string
	// Registry resolves front-ends. Nil means frontend.Builtin().
	Registry *frontend.Registry
	Format   pretty.Options
	// Select, when set, renders the list of matching nodes instead of the root.
	Select *query.Program
	// Jobs bounds directory parallelism. Zero or less means GOMAXPROCS.
	Jobs int
	// Paths is the source.FormatPath mode for directory headers.
	Paths    string
	Cache    *DiskCache
	Progress ProgressSink
}

// FileResult is the rendering of one file.
type FileResult struct {
	Path string
	// Display is Path rendered in the requested path mode.
	Display  string
	Frontend string
	Output   string
	Cached   bool
	Elapsed  time.Duration
}

// Result is the outcome of Run. Files are sorted by path.
type Result struct {
	Dir     bool
	Files   []FileResult
	Timings observ.Report
}

// Write prints every rendering followed by a newline. In directory mode each
// rendering is preceded by an "== path ==" header unless quiet is set.
func (r Result) Write(w io.Writer, quiet bool) error {
	for _, f := range r.Files {
		if r.Dir && !quiet {
			name := f.Display
			if name == "" {
				name = f.Path
			}
			if _, err := fmt.Fprintf(w, "== %s ==\n", name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, f.Output); err != nil {
			return err
		}
	}
	return nil
}

// Run renders req.Path. For a directory, every file a front-end claims is
// rendered in parallel; the first failure cancels the rest and is returned.
func Run(ctx context.Context, req *Request) (Result, error) {
	if req == nil {
		return Result{}, fmt.Errorf("missing request")
	}
	reg := req.Registry
	if reg == nil {
		reg = frontend.Builtin()
	}
	var forced frontend.Frontend
	if req.Frontend != "" {
		f, err := reg.Lookup(req.Frontend)
		if err != nil {
			return Result{}, err
		}
		forced = f
	}
	if !source.ValidPathMode(req.Paths) {
		return Result{}, fmt.Errorf("unknown path mode %q", req.Paths)
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "run")
	span.WithExtra("path", req.Path)

	var (
		res Result
		err error
	)
	if req.Path == StdinPath {
		res, err = runStdin(ctx, req, forced)
	} else {
		res, err = run(ctx, req, reg, forced)
	}
	if err != nil {
		span.End(err.Error())
		return res, err
	}
	span.WithExtra("files", strconv.Itoa(len(res.Files))).End("")
	return res, nil
}

func run(ctx context.Context, req *Request, reg *frontend.Registry, forced frontend.Frontend) (Result, error) {
	timer := observ.NewTimer()
	res := Result{}

	info, err := os.Stat(req.Path)
	if err != nil {
		return res, err
	}
	res.Dir = info.IsDir()

	phase := timer.Begin("discover")
	_, pspan := trace.StartSpan(ctx, trace.ScopePass, "discover")
	paths := []string{req.Path}
	if res.Dir {
		paths, err = listFiles(req.Path, reg, forced != nil)
		if err != nil {
			pspan.End(err.Error())
			return res, err
		}
	}
	// progress events and results share the FileSet's path spelling
	for i, path := range paths {
		paths[i] = filepath.ToSlash(filepath.Clean(path))
	}
	pspan.End(fmt.Sprintf("%d files", len(paths)))
	timer.End(phase, "")

	// resolve front-ends before any work so a bad extension fails fast
	frontends := make([]frontend.Frontend, len(paths))
	for i, path := range paths {
		if forced != nil {
			frontends[i] = forced
			continue
		}
		f, err := reg.ForPath(path)
		if err != nil {
			return res, err
		}
		frontends[i] = f
	}
	for _, path := range paths {
		emit(req.Progress, Event{File: path, Status: StatusQueued})
	}

	base := req.Path
	if !res.Dir {
		base = filepath.Dir(req.Path)
	}

	phase = timer.Begin("load")
	_, pspan = trace.StartSpan(ctx, trace.ScopePass, "load")
	fileSet := source.NewFileSetWithBase(base)
	ids := make([]source.FileID, len(paths))
	for i, path := range paths {
		emit(req.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		id, err := fileSet.Load(path)
		if err != nil {
			emit(req.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			pspan.End(err.Error())
			return res, err
		}
		ids[i] = id
	}
	pspan.End("")
	timer.End(phase, fmt.Sprintf("%d files", len(paths)))

	phase = timer.Begin("format")
	fctx, pspan := trace.StartSpan(ctx, trace.ScopePass, "format")
	res.Files, err = formatAll(fctx, req, fileSet, ids, frontends)
	if err != nil {
		pspan.End(err.Error())
		timer.End(phase, "failed")
		res.Timings = timer.Report()
		return res, err
	}
	pspan.End("")
	timer.End(phase, "jobs="+strconv.Itoa(jobsFor(req.Jobs, len(ids))))
	res.Timings = timer.Report()
	return res, nil
}

// runStdin renders one document read from req.Stdin. There is no extension to
// pick a front-end by, so one must be forced.
func runStdin(ctx context.Context, req *Request, forced frontend.Frontend) (Result, error) {
	timer := observ.NewTimer()
	res := Result{}
	if forced == nil {
		return res, fmt.Errorf("reading %s requires a front-end", stdinName)
	}
	in := req.Stdin
	if in == nil {
		in = os.Stdin
	}

	phase := timer.Begin("load")
	emit(req.Progress, Event{File: stdinName, Stage: StageLoad, Status: StatusWorking})
	content, err := io.ReadAll(in)
	if err != nil {
		emit(req.Progress, Event{File: stdinName, Stage: StageLoad, Status: StatusError, Err: err})
		return res, fmt.Errorf("%s: %w", stdinName, err)
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(stdinName, content)
	timer.End(phase, strconv.Itoa(len(content))+" bytes")

	phase = timer.Begin("format")
	res.Files, err = formatAll(ctx, req, fileSet, []source.FileID{id}, []frontend.Frontend{forced})
	timer.End(phase, "")
	res.Timings = timer.Report()
	return res, err
}

func jobsFor(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func formatAll(ctx context.Context, req *Request, fileSet *source.FileSet, ids []source.FileID, frontends []frontend.Frontend) ([]FileResult, error) {
	// each goroutine owns results[i]
	results := make([]FileResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsFor(req.Jobs, len(ids)))

	for i, id := range ids {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			file := fileSet.Get(id)
			start := time.Now()
			out, err := formatFile(gctx, req, file, frontends[i])
			out.Elapsed = time.Since(start)
			out.Display = file.FormatPath(req.Paths, fileSet.BaseDir())
			if err != nil {
				emit(req.Progress, Event{File: file.Path, Status: StatusError, Err: err, Elapsed: out.Elapsed})
				return err
			}
			status := StatusDone
			if out.Cached {
				status = StatusCached
			}
			emit(req.Progress, Event{File: file.Path, Status: status, Elapsed: out.Elapsed})
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatFile(ctx context.Context, req *Request, file *source.File, f frontend.Frontend) (FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+file.Path)
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		span.End(err.Error())
		return FileResult{}, fmt.Errorf("%s: file too large: %w", file.Path, err)
	}
	span.WithExtra("frontend", f.Name()).WithExtra("bytes", strconv.FormatUint(uint64(size), 10))

	res := FileResult{Path: file.Path, Frontend: f.Name()}

	selectSrc := ""
	if req.Select != nil {
		selectSrc = req.Select.String()
	}
	key := cacheKey(file.Hash, f.Name(), req.Format, selectSrc)
	if req.Cache != nil {
		var payload CachePayload
		if hit, err := req.Cache.Get(key, &payload); err == nil && hit {
			res.Output = payload.Output
			res.Cached = true
			span.WithExtra("cached", "true").End("")
			return res, nil
		}
	}

	emit(req.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	root, err := f.Parse(ctx, file)
	if err != nil {
		span.End(err.Error())
		return res, err
	}

	var v tree.Value = root
	if req.Select != nil {
		emit(req.Progress, Event{File: file.Path, Stage: StageSelect, Status: StatusWorking})
		matches, err := query.Select(root, req.Select)
		if err != nil {
			span.End(err.Error())
			return res, fmt.Errorf("%s: %w", file.Path, err)
		}
		v = tree.List(matches)
	}

	emit(req.Progress, Event{File: file.Path, Stage: StageFormat, Status: StatusWorking})
	res.Output, err = pretty.Format(v, req.Format)
	if err != nil {
		span.End(err.Error())
		return res, fmt.Errorf("%s: %w", file.Path, err)
	}

	if req.Cache != nil {
		payload := CachePayload{Path: file.Path, Frontend: f.Name(), Output: res.Output}
		if err := req.Cache.Put(key, &payload); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-put-failed", err.Error(), trace.CurrentSpan(ctx))
		}
	}
	span.End("")
	return res, nil
}

// listFiles returns the sorted files under dir that a front-end claims, or
// every regular file when all is set. Hidden directories are skipped.
func listFiles(dir string, reg *frontend.Registry, all bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if all || reg.Handles(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
