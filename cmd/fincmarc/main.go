// CLI to convert bibliographic source data to MARC 21, the format the finc
// indexing pipelines ingest.
//
// $ cat harvest.xml | fincmarc -f oaidc -sid 28 > out.xml
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"

	"github.com/miku/fincmarc"
	"github.com/miku/fincmarc/atomicfile"
	"github.com/miku/fincmarc/convert"
	"github.com/miku/fincmarc/marc"
	"github.com/miku/fincmarc/pproc"
	"github.com/miku/fincmarc/stdnum"
	"github.com/sirupsen/logrus"
)

var (
	fromFormat  = flag.String("f", "", fmt.Sprintf("source format (one of: %s)", strings.Join(sourceFormats(), ", ")))
	toFormat    = flag.String("t", "marcxml", "target serialization, marcxml or marc")
	sourceID    = flag.String("sid", "", "source identifier, recorded in 980.b and in record ids")
	collection  = flag.String("c", "", "collection label for 980.c")
	linkPattern = flag.String("p", "", "regexp for local ids eligible for parent link resolution")
	outputFile  = flag.String("o", "", "output file, stdout if empty")
	validate    = flag.Bool("validate", false, "validate isbn and issn in marcxml input, report offenders")
	numWorkers  = flag.Int("w", runtime.NumCPU(), "number of workers for validation")
	cpuprofile  = flag.String("cpuprofile", "", "file to write cpu pprof to")
	verbose     = flag.Bool("verbose", false, "more logging")
	showVersion = flag.Bool("version", false, "show version")
)

var help = `fincmarc reshapes bibliographic data into MARC 21 🗃️

Records get finc style identifiers, finc-<sid>-<localid>, and parent
links in 773.w are rewritten to the same scheme, so article and journal
records connect in the index.

Examples:

    $ metha-cat https://example.org/oai | fincmarc -f oaidc -sid 28 > 28.xml
    $ fincmarc -validate < 28.xml

Usage:

`

func sourceFormats() []string {
	var keys []string
	for k := range convert.Formats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(fincmarc.Version)
		os.Exit(0)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	if *validate {
		if err := runValidate(os.Stdin, os.Stdout, *numWorkers); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *fromFormat == "" {
		log.Fatalf("missing source format, use -f (one of: %s)", strings.Join(sourceFormats(), ", "))
	}
	conv, ok := convert.Formats[*fromFormat]
	if !ok {
		log.Fatalf("unknown format: %s (one of: %s)", *fromFormat, strings.Join(sourceFormats(), ", "))
	}
	if *sourceID == "" {
		log.Fatal("missing source identifier, use -sid")
	}
	ctx := convert.NewContext(*sourceID)
	ctx.Collection = *collection
	if *linkPattern != "" {
		p, err := regexp.Compile(*linkPattern)
		if err != nil {
			log.Fatalf("invalid pattern: %v", err)
		}
		ctx.Pattern = p
	}
	var (
		out io.Writer = os.Stdout
		af  *atomicfile.File
		err error
	)
	if *outputFile != "" {
		af, err = atomicfile.New(*outputFile)
		if err != nil {
			log.Fatal(err)
		}
		out = af
	}
	bw := bufio.NewWriter(out)
	var w marc.Writer
	switch *toFormat {
	case "marcxml":
		w = marc.NewXMLWriter(bw)
	case "marc":
		w = marc.NewBinaryWriter(bw)
	default:
		log.Fatalf("unknown target serialization: %s", *toFormat)
	}
	fatalf := func(format string, v ...interface{}) {
		if af != nil {
			af.Abort()
		}
		log.Fatalf(format, v...)
	}
	if err := conv(ctx, bufio.NewReader(os.Stdin), w); err != nil {
		fatalf("convert: %v", err)
	}
	if err := w.Close(); err != nil {
		fatalf("close: %v", err)
	}
	if err := bw.Flush(); err != nil {
		fatalf("flush: %v", err)
	}
	if af != nil {
		if err := af.Close(); err != nil {
			log.Fatalf("finalize: %v", err)
		}
	}
	log.Printf("processed: %d, skipped: %d, unresolved: %d",
		ctx.Processed, ctx.Skipped, ctx.Unresolved)
}

// runValidate scans marcxml from r and writes one line per invalid standard
// number to w, with record id, scheme and the offending value.
func runValidate(r io.Reader, w io.Writer, workers int) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	proc := pproc.New(r, bw, func(p []byte) ([]byte, error) {
		rec, err := marc.ParseXML(p)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		var (
			buf bytes.Buffer
			id  = rec.ControlField("001")
		)
		for _, f := range rec.FieldsWithTag("020") {
			for _, sf := range f.Subfields {
				if sf.Code == "a" && stdnum.ISBN(sf.Value) == "" {
					fmt.Fprintf(&buf, "%s\tisbn\t%s\n", id, sf.Value)
				}
			}
		}
		for _, f := range rec.FieldsWithTag("022") {
			for _, sf := range f.Subfields {
				if sf.Code == "a" && stdnum.ISSN(sf.Value) == "" {
					fmt.Fprintf(&buf, "%s\tissn\t%s\n", id, sf.Value)
				}
			}
		}
		if buf.Len() == 0 {
			return nil, nil
		}
		return buf.Bytes(), nil
	}, pproc.WithWorkers(workers))
	return proc.Run(context.Background())
}
