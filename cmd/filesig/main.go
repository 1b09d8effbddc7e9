// Command filesig prints the detected format of files, directories and S3
// objects.
//
//	filesig [-catalog file] [-json] [-glob pattern] [-dump-catalog file] path...
//
// Paths of the form s3://bucket/key are read from S3 using the
// BEAVER_FILESIG_S3_* settings. Directories are walked recursively.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/gobeaver/filesig"
	"github.com/gobeaver/filesig/catalogfile"
	"github.com/gobeaver/filesig/signature"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type output struct {
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	Name      string `json:"name,omitempty"`
	Extension string `json:"extension,omitempty"`
	MIME      string `json:"mime,omitempty"`
	Error     string `json:"error,omitempty"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("filesig", flag.ContinueOnError)
	flags.SetOutput(stderr)
	catalogPath := flags.String("catalog", "", "XML catalog appended to the built-in signatures")
	asJSON := flags.Bool("json", false, "print one JSON object per line")
	pattern := flags.String("glob", "", "only inspect files whose base name matches this glob, or whose relative path matches when it contains a slash")
	dumpPath := flags.String("dump-catalog", "", "write the active catalog as XML to this file and exit")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: filesig [-catalog file] [-json] [-glob pattern] [-dump-catalog file] path...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := filesig.GetConfig()
	if err != nil {
		fmt.Fprintln(stderr, "filesig:", err)
		return 1
	}
	if *catalogPath != "" {
		cfg.CatalogFile = *catalogPath
	}
	cfg.WatchCatalog = false

	d, err := filesig.New(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "filesig:", err)
		return 1
	}
	defer d.Close()

	if *dumpPath != "" {
		if err := catalogfile.SaveFile(*dumpPath, d.Catalog().Records()); err != nil {
			fmt.Fprintln(stderr, "filesig:", err)
			return 1
		}
		return 0
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	selector := filesig.All()
	if *pattern != "" {
		selector, err = filesig.CompileGlob(*pattern)
		if err != nil {
			fmt.Fprintf(stderr, "filesig: invalid glob %q: %v\n", *pattern, err)
			return 2
		}
	}

	p := &printer{w: stdout, json: *asJSON}
	status := 0
	for _, arg := range flags.Args() {
		for _, det := range detect(ctx, d, arg, selector) {
			p.print(det)
			if det.Err != nil && !signature.IsUnreadableContainer(det.Err) {
				status = 1
			}
		}
		if ctx.Err() != nil {
			return 130
		}
	}
	return status
}

func detect(ctx context.Context, d *filesig.Detector, arg string, selector filesig.FileSelector) []filesig.Detection {
	if rest, ok := strings.CutPrefix(arg, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return []filesig.Detection{{Path: arg, Err: errors.New("expected s3://bucket/key")}}
		}
		res, err := d.DetectS3(ctx, bucket, key)
		return []filesig.Detection{{Path: arg, Result: res, Err: err}}
	}

	info, err := os.Stat(arg)
	if err == nil && info.IsDir() {
		dets, err := d.DetectTree(ctx, arg, selector)
		if err != nil {
			dets = append(dets, filesig.Detection{Path: arg, Err: err})
		}
		return dets
	}

	res, err := d.DetectFile(ctx, arg)
	return []filesig.Detection{{Path: arg, Result: res, Err: err}}
}

type printer struct {
	w    io.Writer
	json bool
}

func (p *printer) print(det filesig.Detection) {
	out := output{
		Path:      det.Path,
		Kind:      det.Result.Kind.String(),
		Name:      det.Result.Record.Name,
		Extension: det.Result.Extension(),
		MIME:      det.Result.MIME(),
	}
	if det.Err != nil {
		out.Error = det.Err.Error()
	}
	// acquisition failures carry no result
	if det.Err != nil && !det.Result.Found() && !signature.IsUnreadableContainer(det.Err) {
		out.Kind = "error"
	}

	if p.json {
		_ = json.NewEncoder(p.w).Encode(out)
		return
	}

	switch {
	case out.Kind == "error":
		fmt.Fprintf(p.w, "%s: error: %s\n", out.Path, out.Error)
	case det.Result.Kind == signature.NoMatch:
		fmt.Fprintf(p.w, "%s: unknown\n", out.Path)
	default:
		ext := out.Extension
		if ext == "" {
			ext = "-"
		}
		fmt.Fprintf(p.w, "%s: %s %s (%s)", out.Path, ext, out.MIME, out.Name)
		if out.Error != "" {
			fmt.Fprintf(p.w, " [%s]", out.Error)
		}
		fmt.Fprintln(p.w)
	}
}
