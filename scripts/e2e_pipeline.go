//go:build ignore

// e2e_pipeline exercises the tokenizer, both codecs and their trainers
// against the bundled sample corpus and writes structured results to
// data/e2e_pipeline.log.
// Run from the project root:
//
//	go run scripts/e2e_pipeline.go
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Kiryukhasemenov/InFlags/caseflag"
	"github.com/Kiryukhasemenov/InFlags/data"
	"github.com/Kiryukhasemenov/InFlags/diaflag"
	"github.com/Kiryukhasemenov/InFlags/tokenizer"
)

// ---------- constants ----------

const (
	logPath      = "data/e2e_pipeline.log"
	maxDetailLen = 200
	concWorkers  = 8
	concIter     = 100
	separator    = "=========================================================="
)

// ---------- types ----------

type testResult struct {
	name     string
	module   string
	passed   bool
	duration time.Duration
	detail   string
}

type moduleReport struct {
	name     string
	tests    int
	passed   int
	failed   int
	duration time.Duration
}

// ---------- helpers ----------

func pass(module, name string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: true, duration: time.Since(start)}
}

func fail(module, name, detail string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: false, duration: time.Since(start), detail: truncate(detail, maxDetailLen)}
}

func truncate(s string, maxRunes int) string {
	n := 0
	for i := range s {
		n++
		if n > maxRunes {
			return s[:i] + "..."
		}
	}
	return s
}

func safeRun(module, name string, fn func() testResult) (r testResult) {
	defer func() {
		if p := recover(); p != nil {
			r = fail(module, name, fmt.Sprintf("PANIC: %v", p), time.Now())
		}
	}()
	return fn()
}

func corpusLines() []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(data.SampleCorpus, "\n"), "\n") {
		lines = append(lines, line)
	}
	return lines
}

func trainCase() (*caseflag.Codec, error) {
	tr, err := caseflag.NewTrainer(caseflag.DefaultConfig())
	if err != nil {
		return nil, err
	}
	for _, line := range corpusLines() {
		tr.Add(line)
	}
	return tr.Codec(), nil
}

func trainDia(lines []string) (*diaflag.Codec, error) {
	tr, err := diaflag.NewTrainer(diaflag.DefaultConfig())
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		tr.Add(line)
	}
	return tr.Codec(), nil
}

// ---------- test suites ----------

func testTokenizer() []testResult {
	const mod = "tokenizer"
	var results []testResult

	results = append(results, safeRun(mod, "roundtrip_full_corpus", func() testResult {
		start := time.Now()
		c := tokenizer.New()
		for _, line := range corpusLines() {
			if got := tokenizer.Detokenize(c.Tokenize(line)); got != line {
				return fail(mod, "roundtrip_full_corpus",
					fmt.Sprintf("line %q came back as %q", truncate(line, 60), truncate(got, 60)), start)
			}
		}
		return pass(mod, "roundtrip_full_corpus", start)
	}))

	results = append(results, safeRun(mod, "word_tokens_nonempty", func() testResult {
		start := time.Now()
		c := tokenizer.New()
		for _, line := range corpusLines() {
			words := 0
			for _, tok := range c.Tokenize(line) {
				if tok.Kind == tokenizer.Word {
					words++
				}
			}
			if words == 0 {
				return fail(mod, "word_tokens_nonempty",
					fmt.Sprintf("no word tokens in %q", truncate(line, 60)), start)
			}
		}
		return pass(mod, "word_tokens_nonempty", start)
	}))

	return results
}

func testCaseflag() []testResult {
	const mod = "caseflag"
	var results []testResult

	codec, err := trainCase()
	if err != nil {
		return []testResult{fail(mod, "train", err.Error(), time.Now())}
	}

	results = append(results, safeRun(mod, "roundtrip_full_corpus", func() testResult {
		start := time.Now()
		for _, line := range corpusLines() {
			enc := codec.EncodeLine(line)
			if got := codec.DecodeLine(enc); got != line {
				return fail(mod, "roundtrip_full_corpus",
					fmt.Sprintf("input %q\nencoded %q\ndecoded %q",
						truncate(line, 60), truncate(enc, 60), truncate(got, 60)), start)
			}
		}
		return pass(mod, "roundtrip_full_corpus", start)
	}))

	results = append(results, safeRun(mod, "encoded_is_lowercase", func() testResult {
		start := time.Now()
		for _, line := range corpusLines() {
			enc := codec.EncodeLine(line)
			if enc != strings.ToLower(enc) {
				return fail(mod, "encoded_is_lowercase",
					fmt.Sprintf("uppercase survives in %q", truncate(enc, 60)), start)
			}
		}
		return pass(mod, "encoded_is_lowercase", start)
	}))

	results = append(results, safeRun(mod, "naive_roundtrip", func() testResult {
		start := time.Now()
		for _, line := range corpusLines() {
			enc := codec.EncodeLineNaive(line)
			if got := codec.DecodeLineNaive(enc); got != line {
				return fail(mod, "naive_roundtrip",
					fmt.Sprintf("input %q decoded as %q", truncate(line, 60), truncate(got, 60)), start)
			}
		}
		return pass(mod, "naive_roundtrip", start)
	}))

	results = append(results, safeRun(mod, "save_load_agree", func() testResult {
		start := time.Now()
		path := "data/e2e_case_vocab.json"
		defer os.Remove(path)
		if err := codec.Save(path); err != nil {
			return fail(mod, "save_load_agree", err.Error(), start)
		}
		loaded, err := caseflag.Load(path)
		if err != nil {
			return fail(mod, "save_load_agree", err.Error(), start)
		}
		for _, line := range corpusLines() {
			if loaded.EncodeLine(line) != codec.EncodeLine(line) {
				return fail(mod, "save_load_agree",
					fmt.Sprintf("loaded codec disagrees on %q", truncate(line, 60)), start)
			}
		}
		return pass(mod, "save_load_agree", start)
	}))

	return results
}

func testDiaflag() []testResult {
	const mod = "diaflag"
	var results []testResult

	codec, err := trainDia(corpusLines())
	if err != nil {
		return []testResult{fail(mod, "train", err.Error(), time.Now())}
	}

	results = append(results, safeRun(mod, "roundtrip_full_corpus", func() testResult {
		start := time.Now()
		for _, line := range corpusLines() {
			enc := codec.EncodeLine(line)
			if got := codec.DecodeLine(enc); got != line {
				return fail(mod, "roundtrip_full_corpus",
					fmt.Sprintf("input %q\nencoded %q\ndecoded %q",
						truncate(line, 60), truncate(enc, 60), truncate(got, 60)), start)
			}
		}
		return pass(mod, "roundtrip_full_corpus", start)
	}))

	results = append(results, safeRun(mod, "encoded_has_no_configured_marks", func() testResult {
		start := time.Now()
		for _, line := range corpusLines() {
			enc := codec.EncodeLine(line)
			if stripped := codec.Dediacritize(enc); stripped != enc {
				return fail(mod, "encoded_has_no_configured_marks",
					fmt.Sprintf("marks survive in %q", truncate(enc, 60)), start)
			}
		}
		return pass(mod, "encoded_has_no_configured_marks", start)
	}))

	results = append(results, safeRun(mod, "save_load_agree", func() testResult {
		start := time.Now()
		path := "data/e2e_dia_vocab.json"
		defer os.Remove(path)
		if err := codec.Save(path); err != nil {
			return fail(mod, "save_load_agree", err.Error(), start)
		}
		loaded, err := diaflag.Load(path)
		if err != nil {
			return fail(mod, "save_load_agree", err.Error(), start)
		}
		for _, line := range corpusLines() {
			if loaded.EncodeLine(line) != codec.EncodeLine(line) {
				return fail(mod, "save_load_agree",
					fmt.Sprintf("loaded codec disagrees on %q", truncate(line, 60)), start)
			}
		}
		return pass(mod, "save_load_agree", start)
	}))

	return results
}

func testPipeline() []testResult {
	const mod = "pipeline"
	var results []testResult

	results = append(results, safeRun(mod, "case_then_dia_roundtrip", func() testResult {
		start := time.Now()
		caseCodec, err := trainCase()
		if err != nil {
			return fail(mod, "case_then_dia_roundtrip", err.Error(), start)
		}

		// The diacritic codec trains on case-encoded text so its
		// vocabulary keys match what it will see on the wire.
		var caseEncoded []string
		for _, line := range corpusLines() {
			caseEncoded = append(caseEncoded, caseCodec.EncodeLine(line))
		}
		diaCodec, err := trainDia(caseEncoded)
		if err != nil {
			return fail(mod, "case_then_dia_roundtrip", err.Error(), start)
		}

		for i, line := range corpusLines() {
			wire := diaCodec.EncodeLine(caseEncoded[i])
			back := caseCodec.DecodeLine(diaCodec.DecodeLine(wire))
			if back != line {
				return fail(mod, "case_then_dia_roundtrip",
					fmt.Sprintf("input %q\nwire %q\nback %q",
						truncate(line, 60), truncate(wire, 60), truncate(back, 60)), start)
			}
		}
		return pass(mod, "case_then_dia_roundtrip", start)
	}))

	return results
}

func testConcurrent() []testResult {
	const mod = "concurrent"
	var results []testResult

	results = append(results, safeRun(mod, "both_codecs_8_goroutines_x100", func() testResult {
		start := time.Now()
		caseCodec, err := trainCase()
		if err != nil {
			return fail(mod, "both_codecs_8_goroutines_x100", err.Error(), start)
		}
		diaCodec, err := trainDia(corpusLines())
		if err != nil {
			return fail(mod, "both_codecs_8_goroutines_x100", err.Error(), start)
		}
		lines := corpusLines()

		var bad atomic.Int64
		var wg sync.WaitGroup
		for w := 0; w < concWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() {
					if p := recover(); p != nil {
						bad.Add(1)
					}
				}()
				for i := 0; i < concIter; i++ {
					line := lines[i%len(lines)]
					if caseCodec.DecodeLine(caseCodec.EncodeLine(line)) != line {
						bad.Add(1)
					}
					if diaCodec.DecodeLine(diaCodec.EncodeLine(line)) != line {
						bad.Add(1)
					}
				}
			}()
		}
		wg.Wait()

		if n := bad.Load(); n > 0 {
			return fail(mod, "both_codecs_8_goroutines_x100",
				fmt.Sprintf("%d failures across goroutines", n), start)
		}
		return pass(mod, "both_codecs_8_goroutines_x100", start)
	}))

	return results
}

// ---------- orchestration ----------

func runAllSuites() []testResult {
	suites := []func() []testResult{
		testTokenizer,
		testCaseflag,
		testDiaflag,
		testPipeline,
		testConcurrent,
	}

	var all []testResult
	for _, suite := range suites {
		all = append(all, suite()...)
	}
	return all
}

func buildReports(results []testResult) []moduleReport {
	order := make(map[string]int)
	var reports []moduleReport

	for _, r := range results {
		idx, exists := order[r.module]
		if !exists {
			idx = len(reports)
			order[r.module] = idx
			reports = append(reports, moduleReport{name: r.module})
		}
		reports[idx].tests++
		reports[idx].duration += r.duration
		if r.passed {
			reports[idx].passed++
		} else {
			reports[idx].failed++
		}
	}
	return reports
}

func writeLog(path string, results []testResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	now := time.Now().UTC().Format(time.RFC3339)
	goVer := runtime.Version()
	platform := runtime.GOOS + "/" + runtime.GOARCH

	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, "  InFlags E2E Pipeline Test")
	fmt.Fprintf(bw, "  Timestamp: %s\n", now)
	fmt.Fprintf(bw, "  Go: %s  OS: %s\n", goVer, platform)
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw)

	reports := buildReports(results)
	var totalDuration time.Duration
	for _, rep := range reports {
		totalDuration += rep.duration
	}

	for _, rep := range reports {
		fmt.Fprintf(bw, "[%s] %d tests | %d passed | %d failed | %s\n",
			rep.name, rep.tests, rep.passed, rep.failed, rep.duration.Round(time.Microsecond))
		for _, r := range results {
			if r.module != rep.name {
				continue
			}
			status := "PASS"
			if !r.passed {
				status = "FAIL"
			}
			fmt.Fprintf(bw, "  %-6s %-45s %s\n", status, r.name, r.duration.Round(time.Microsecond))
		}
		fmt.Fprintln(bw)
	}

	var failures []testResult
	for _, r := range results {
		if !r.passed {
			failures = append(failures, r)
		}
	}
	if len(failures) > 0 {
		fmt.Fprintln(bw, "--- FAILURES ---")
		for _, r := range failures {
			fmt.Fprintf(bw, "  FAIL  [%s] %-40s %s\n", r.module, r.name, r.duration.Round(time.Microsecond))
			if r.detail != "" {
				for _, line := range strings.Split(r.detail, "\n") {
					fmt.Fprintf(bw, "        %s\n", line)
				}
			}
		}
		fmt.Fprintln(bw)
	}

	totalTests := len(results)
	totalPassed := 0
	totalFailed := 0
	for _, r := range results {
		if r.passed {
			totalPassed++
		} else {
			totalFailed++
		}
	}

	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "  SUMMARY: %d tests | %d passed | %d failed | %s\n",
		totalTests, totalPassed, totalFailed, totalDuration.Round(time.Microsecond))
	fmt.Fprintln(bw, separator)

	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(results []testResult) {
	reports := buildReports(results)
	totalPassed := 0
	totalFailed := 0
	var totalDuration time.Duration

	for _, rep := range reports {
		totalPassed += rep.passed
		totalFailed += rep.failed
		totalDuration += rep.duration

		status := "OK"
		if rep.failed > 0 {
			status = "FAIL"
		}
		log.Printf("  %-12s %d/%d %s", rep.name, rep.passed, rep.tests, status)
	}

	log.Printf("")
	log.Printf("  %d tests | %d passed | %d failed | %s",
		len(results), totalPassed, totalFailed, totalDuration.Round(time.Microsecond))

	for _, r := range results {
		if !r.passed {
			log.Printf("  FAIL [%s] %s: %s", r.module, r.name, r.detail)
		}
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[e2e] ")

	log.Printf("starting E2E pipeline test")
	totalStart := time.Now()

	results := runAllSuites()

	log.Printf("completed in %s", time.Since(totalStart).Round(time.Microsecond))
	log.Printf("")

	printSummary(results)

	if err := writeLog(logPath, results); err != nil {
		log.Fatalf("cannot write log: %v", err)
	}
	log.Printf("log written to %s", logPath)

	for _, r := range results {
		if !r.passed {
			os.Exit(1)
		}
	}
}
