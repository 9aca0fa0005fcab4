// fincmarc-id builds finc identifiers and checks standard numbers. Values
// come from arguments or from stdin, one per line, so lists pipe through.
//
// $ fincmarc-id -s 28 oai:example.org:1234
// finc-28-oai:example.org:1234
//
// $ fincmarc-id -isbn 3-598-21500-9
// 3598215009
//
// $ fincmarc-id -issn 03401707
// 0340-1707
//
// Invalid values yield an empty line, so input and output stay aligned.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/miku/fincmarc"
	"github.com/miku/fincmarc/stdnum"
)

var (
	sourceID    = flag.String("s", "", "build finc ids for a source")
	checkISBN   = flag.Bool("isbn", false, "normalize isbn values, with checksum verification")
	checkISSN   = flag.Bool("issn", false, "normalize issn values, with checksum verification")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(fincmarc.Version)
		os.Exit(0)
	}
	var f func(string) string
	switch {
	case *checkISBN:
		f = stdnum.ISBN
	case *checkISSN:
		f = stdnum.ISSN
	case *sourceID != "":
		f = func(v string) string {
			return fincmarc.CanonicalID(*sourceID, v)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			fmt.Println(f(arg))
		}
		return
	}
	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fmt.Fprintln(bw, f(strings.TrimSpace(scanner.Text())))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
