// Command dltdump parses a DLT capture file and prints a one-line summary
// per record, demonstrating the dltfile library surface. It is
// deliberately thin: no subcommands, no config schema beyond what
// dltconfig already loads.
//
// Flag setup follows cmd/ch10d/main.go's shape (flag.String for paths),
// scaled down to a single-shot CLI instead of a long-running daemon; logging
// goes to stderr through internal/dltlog.NewDefault, without rotation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"example.com/dltrace/dltfile"
	"example.com/dltrace/internal/dltaudit"
	"example.com/dltrace/internal/dltconfig"
	"example.com/dltrace/internal/dltlog"
	"example.com/dltrace/internal/dltmetrics"
	"example.com/dltrace/internal/dltreport"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	splitFactor := flag.Int("split", 0, "chunk count override (0 = NumCPU)")
	useMmap := flag.Bool("mmap", false, "memory-map the input file instead of reading it whole")
	reportPath := flag.String("report", "", "write a PDF summary report to this path (optional)")
	embedQR := flag.Bool("qr", false, "embed a QR code of the file's SHA-256 in the report")
	auditPath := flag.String("audit", "", "append corruption markers to this JSONL audit log (optional)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dltdump [flags] <capture-file>")
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	cfg := dltconfig.Default()
	if *configPath != "" {
		loaded, err := dltconfig.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *splitFactor > 0 {
		cfg.SplitFactor = *splitFactor
	}
	if *reportPath == "" {
		*reportPath = cfg.Report.OutputPath
	}
	if cfg.Report.EmbedQR {
		*embedQR = true
	}

	logger := dltlog.NewDefault(os.Stderr)

	metrics := dltmetrics.New()
	opts := []dltfile.Option{
		dltfile.WithConfig(cfg),
		dltfile.WithLogger(logger),
		dltfile.WithMetrics(metrics),
	}
	if *useMmap {
		opts = append(opts, dltfile.WithMmap())
	}

	stopProgress := dltmetrics.StartProgressPrinter(os.Stderr, metrics, 250*time.Millisecond)
	f, err := dltfile.Parse(inputPath, opts...)
	stopProgress()
	if err != nil {
		log.Fatalf("parse: %v", err)
	}

	for i := 0; i < f.RecordsNum(); i++ {
		rec, ok := f.GetRecord(i)
		if !ok {
			continue
		}
		if rec.IsCorrupted() {
			fmt.Printf("%6d  [CORRUPT @%d] %s\n", i, rec.StartOffset(), rec.CorruptionCause())
			continue
		}
		fmt.Printf("%6d  %-4s %-4s type=%d subtype=%d  %s\n", i, rec.Apid(), rec.Ctid(), rec.Type(), rec.Subtype(), rec.Message())
	}

	summary := f.Summary()
	fmt.Fprintf(os.Stderr, "\n%d records, %d corruption marker(s), %d ECU(s), %d APID(s), %d CTID(s)\n",
		summary.TotalRecords, summary.CorruptionMarkers, len(summary.Ecus), len(summary.Apids), len(summary.Ctids))

	if *reportPath != "" {
		err := dltreport.Generate(f, inputPath, dltreport.Options{
			OutputPath: *reportPath,
			EmbedQR:    *embedQR,
		})
		if err != nil {
			log.Fatalf("report: %v", err)
		}
	}

	if *auditPath != "" {
		if err := dltaudit.New(*auditPath).RecordFile(f); err != nil {
			log.Fatalf("audit: %v", err)
		}
	}
}
