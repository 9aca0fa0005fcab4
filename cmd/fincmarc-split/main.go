// fincmarc-split slices concatenated XML harvests into single record
// elements. Concatenated dumps often carry an imbalance of opening and
// closing tags and conversions then fail somewhere mid file. The splitter
// tolerates a truncated trailing element and just stops there.
//
// $ zcat harvest.xml.gz | fincmarc-split > records.xml
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/miku/fincmarc"
	"github.com/miku/fincmarc/feeds"
	"github.com/miku/fincmarc/xmlsplit"
)

var (
	input       = flag.String("i", "-", "input file (use - for stdin, .gz and .zst decompress transparently)")
	tag         = flag.String("tag", "record", "name of the element to extract")
	maxBuf      = flag.Int("x", xmlsplit.DefaultMaxBufferSize, "max buffer size for an incomplete element")
	maxElem     = flag.Int("m", xmlsplit.DefaultMaxTokenSize, "max element size")
	useRS       = flag.Bool("rs", false, "separate elements with an ascii record separator instead of newline")
	printStats  = flag.Bool("stats", false, "print element count at the end")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(fincmarc.Version)
		os.Exit(0)
	}
	var r io.Reader = os.Stdin
	if *input != "-" {
		pr, pw := io.Pipe()
		go func() {
			pw.CloseWithError(feeds.Cat(*input, pw))
		}()
		r = pr
	}
	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	sep := []byte("\n")
	if *useRS {
		sep = []byte{'\n', 0x1E, '\n'}
	}
	scanner := bufio.NewScanner(bufio.NewReader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), *maxElem)
	scanner.Split(xmlsplit.TagSplitter(*tag, *maxBuf, *maxElem))
	var n int64
	for scanner.Scan() {
		if _, err := bw.Write(scanner.Bytes()); err != nil {
			log.Fatal(err)
		}
		if _, err := bw.Write(sep); err != nil {
			log.Fatal(err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
	if *printStats {
		log.Printf("records: %d", n)
	}
}
