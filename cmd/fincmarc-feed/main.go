// fincmarc-feed manages raw feeds and conversion artifacts. We start with
// OAI-PMH via external tools, but aim towards less shelling out in the future.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/miku/fincmarc"
	"github.com/miku/fincmarc/atomicfile"
	"github.com/miku/fincmarc/config"
	"github.com/miku/fincmarc/convert"
	"github.com/miku/fincmarc/exdep"
	"github.com/miku/fincmarc/feeds"
	"github.com/miku/fincmarc/marc"
	"github.com/miku/fincmarc/xflag"
	"github.com/sethgrid/pester"
)

var docs = strings.TrimLeft(`
# fincmarc-feed - manage raw feeds and conversion artifacts

Harvests OAI-PMH endpoints through metha, stores dated input artifacts,
converts the newest harvest to a MARC 21 output artifact and enforces a
retention policy on both kinds. Artifacts follow a fixed naming scheme:

    <sid>-input-<YYYYMMDD>.<ext>
    <sid>-output-<YYYYMMDD>.<ext>

## external tools

$ go install -v github.com/miku/metha/cmd/...@latest

## harvest a source

$ fincmarc-feed -s 28 -e https://www.zvdd.de/oai2/

## convert the newest harvest

$ fincmarc-feed -s 28 -C

## flags

`, "\n")

var defaults = config.Default().FromEnv()

var (
	dir           = flag.String("d", defaults.DataDir, "the main data directory to put all artifacts under")
	fetchSource   = flag.String("s", "", "source identifier to work on")
	convertNewest = flag.Bool("C", false, "convert the newest input artifact of the source")
	convFormat    = flag.String("F", "oaidc", "source format for conversion")
	collection    = flag.String("c", "", "collection label for converted records")
	endpointURL   = flag.String("e", "", "OAI-PMH endpoint URL")
	oaiFormat     = flag.String("f", defaults.Format, "OAI-PMH metadata format")
	oaiSet        = flag.String("set", "", "OAI-PMH set")
	listArtifacts = flag.Bool("l", false, "list artifacts of the source")
	showStatus    = flag.Bool("a", false, "show status and paths")
	keep          = flag.Int("k", defaults.Keep, "artifacts to keep per source and kind, 0 keeps all")
	ext           = flag.String("x", "xml.gz", "input artifact extension, gz and zst compress transparently")
	maxRetries    = flag.Int("r", defaults.MaxRetries, "max retries")
	timeout       = flag.Duration("T", defaults.Timeout, "connection timeout")
	dumpsURL      = flag.String("dumps", "", "list files of an autoindex dump page")
	dumpsPattern  = flag.String("dumps-pattern", `.*\.xml\.gz$`, "filename pattern for dump index listings")
	showVersion   = flag.Bool("version", false, "show version")

	stampDate    = xflag.Date{Time: time.Now()}
	backfillFrom xflag.Date
)

func main() {
	flag.Var(&stampDate, "t", "date stamp for artifacts of this run (YYYY-MM-DD)")
	flag.Var(&backfillFrom, "B", "list missing input days from a given day (YYYY-MM-DD) on")
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(fincmarc.Version)
		os.Exit(0)
	}
	cfg := defaults
	if *dir != cfg.DataDir {
		cfg.SetDataDir(*dir)
	}
	cfg.SID = *fetchSource
	cfg.Collection = *collection
	cfg.EndpointURL = *endpointURL
	cfg.Format = *oaiFormat
	cfg.Set = *oaiSet
	cfg.Date = stampDate.Time
	cfg.Keep = *keep
	cfg.MaxRetries = *maxRetries
	cfg.Timeout = *timeout
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatal(err)
	}
	switch {
	case *showStatus:
		fmt.Printf("feeds: %s\n", cfg.FeedDir)
		fmt.Printf("outputs: %s\n", cfg.OutputDir)
	case *dumpsURL != "":
		pattern, err := regexp.Compile(*dumpsPattern)
		if err != nil {
			log.Fatalf("invalid pattern: %v", err)
		}
		index, err := feeds.NewDumpIndex(*dumpsURL, pattern)
		if err != nil {
			log.Fatal(err)
		}
		client := pester.New()
		client.Backoff = pester.ExponentialBackoff
		client.MaxRetries = cfg.MaxRetries
		client.RetryOnHTTP429 = true
		client.Timeout = cfg.Timeout
		index.Client = client
		files, err := index.Files()
		if err != nil {
			log.Fatal(err)
		}
		for _, f := range files {
			fmt.Printf("%s\t%s\t%s\n", f.LastModified.Format("2006-01-02 15:04"), f.Size, f.URL)
		}
	case cfg.SID == "":
		flag.Usage()
		os.Exit(1)
	case *listArtifacts:
		inputs, err := feeds.Inputs(cfg.FeedDir, cfg.SID)
		if err != nil {
			log.Fatal(err)
		}
		outputs, err := feeds.Outputs(cfg.OutputDir, cfg.SID)
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range inputs {
			fmt.Println(path.Join(cfg.FeedDir, name))
		}
		for _, name := range outputs {
			fmt.Println(path.Join(cfg.OutputDir, name))
		}
	case !backfillFrom.IsZero():
		missing, err := feeds.MissingDays(cfg.FeedDir, cfg.SID, *ext, backfillFrom.Time, cfg.Date)
		if err != nil {
			log.Fatal(err)
		}
		for _, d := range missing {
			fmt.Println(d.Format("2006-01-02"))
		}
	case *convertNewest:
		runConvert(cfg)
	case cfg.EndpointURL != "":
		runHarvest(cfg)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// runHarvest syncs the endpoint and freezes the merged harvest into a dated
// input artifact.
func runHarvest(cfg *config.Config) {
	if errs := exdep.CheckRequired(); len(errs) > 0 {
		for _, err := range errs {
			log.Println(err)
		}
		log.Fatal("missing external tools")
	}
	harvester := &feeds.OAIHarvester{
		Endpoint: cfg.EndpointURL,
		Format:   cfg.Format,
		Set:      cfg.Set,
		BaseDir:  path.Join(cfg.DataDir, "metha"),
	}
	log.Printf("syncing %s", cfg.EndpointURL)
	if err := harvester.Sync(); err != nil {
		log.Fatal(err)
	}
	merged, err := harvester.Merge()
	if err != nil {
		log.Fatal(err)
	}
	defer os.Remove(merged.Name())
	defer merged.Close()
	dst := path.Join(cfg.FeedDir, feeds.InputFilename(cfg.SID, cfg.Date, *ext))
	af, err := atomicfile.New(dst)
	if err != nil {
		log.Fatal(err)
	}
	cw, err := feeds.CompressWriter(af, dst)
	if err != nil {
		af.Abort()
		log.Fatal(err)
	}
	if _, err := io.Copy(cw, merged); err != nil {
		af.Abort()
		log.Fatal(err)
	}
	if err := cw.Close(); err != nil {
		af.Abort()
		log.Fatal(err)
	}
	if err := af.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("harvested %s", dst)
	if err := feeds.PruneInputs(cfg.FeedDir, cfg.SID, cfg.Keep); err != nil {
		log.Fatal(err)
	}
}

// runConvert turns the newest input artifact into a dated output artifact
// and applies the retention policy afterwards.
func runConvert(cfg *config.Config) {
	conv, ok := convert.Formats[*convFormat]
	if !ok {
		log.Fatalf("unknown format: %s", *convFormat)
	}
	inputs, err := feeds.Inputs(cfg.FeedDir, cfg.SID)
	if err != nil {
		log.Fatal(err)
	}
	if len(inputs) == 0 {
		log.Fatalf("no input artifacts for %s under %s", cfg.SID, cfg.FeedDir)
	}
	newest := path.Join(cfg.FeedDir, inputs[len(inputs)-1])
	log.Printf("converting %s", newest)
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(feeds.Cat(newest, pw))
	}()
	af, err := feeds.CreateOutput(cfg.OutputDir, cfg.SID, cfg.Date, "xml")
	if err != nil {
		log.Fatal(err)
	}
	bw := bufio.NewWriter(af)
	w := marc.NewXMLWriter(bw)
	ctx := convert.NewContext(cfg.SID)
	ctx.Collection = cfg.Collection
	if err := conv(ctx, bufio.NewReader(pr), w); err != nil {
		af.Abort()
		log.Fatal(err)
	}
	if err := w.Close(); err != nil {
		af.Abort()
		log.Fatal(err)
	}
	if err := bw.Flush(); err != nil {
		af.Abort()
		log.Fatal(err)
	}
	if err := af.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("processed: %d, skipped: %d, unresolved: %d",
		ctx.Processed, ctx.Skipped, ctx.Unresolved)
	if err := feeds.PruneOutputs(cfg.OutputDir, cfg.SID, cfg.Keep); err != nil {
		log.Fatal(err)
	}
}
