// Package main provides a performance benchmarking tool for the agrilens CLI.
// It replicates the seed data at increasing scales, runs each command several
// times per scale, treats the first successful run as cold and averages the
// rest as warm, and writes a CSV for performance analysis.
//
// Prerequisites:
// - agrilens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the scaled datasets are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/agrilens/internal/store"
	"github.com/huangsam/agrilens/schema"
)

// BenchmarkResult holds the cold run and the average of warm runs for one command at one scale.
type BenchmarkResult struct {
	Scale    int
	Records  int
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Scales   []int
	Commands [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    4,
		Scales:  []int{1, 100, 1000, 10000},
		Commands: [][]string{
			{"feed"},
			{"feed", "trend"},
			{"competitors"},
			{"dealers"},
			{"farms"},
			{"series", "--tracker", "feed", "--field", "score"},
		},
	}

	if _, err := exec.LookPath("agrilens"); err != nil {
		fmt.Printf("Prerequisites check failed: agrilens binary not found in PATH\n")
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// scaleDataset repeats every collection of ds factor times, suffixing ids so
// the copies stay distinct.
func scaleDataset(ds *schema.Dataset, factor int) *schema.Dataset {
	out := &schema.Dataset{}
	for i := range factor {
		suffix := "-" + strconv.Itoa(i)
		for _, r := range ds.Brands {
			r.ID += suffix
			out.Brands = append(out.Brands, r)
		}
		for _, r := range ds.Promotions {
			r.ID += suffix
			out.Promotions = append(out.Promotions, r)
		}
		for _, r := range ds.Switching {
			r.ID += suffix
			out.Switching = append(out.Switching, r)
		}
		for _, r := range ds.Issues {
			r.ID += suffix
			out.Issues = append(out.Issues, r)
		}
		for _, r := range ds.Farms {
			r.ID += suffix
			out.Farms = append(out.Farms, r)
		}
		for _, r := range ds.Feed {
			r.ID += suffix
			out.Feed = append(out.Feed, r)
		}
	}
	return out
}

// recordCount returns the number of records across every collection.
func recordCount(ds *schema.Dataset) int {
	return len(ds.Brands) + len(ds.Promotions) + len(ds.Switching) + len(ds.Issues) + len(ds.Farms) + len(ds.Feed)
}

// runBenchmarks writes one data directory per scale and times every command against it.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	seed, err := store.Embedded()
	if err != nil {
		return nil, err
	}

	var results []BenchmarkResult
	fmt.Printf("Starting benchmark: %d scales, %d commands, %v timeout, %d runs\n",
		len(config.Scales), len(config.Commands), config.Timeout, config.Runs)

	for _, scale := range config.Scales {
		ds := scaleDataset(seed, scale)
		dataDir := filepath.Join(config.WorkDir, fmt.Sprintf("scale_%d", scale))
		if err := store.WriteDataset(dataDir, ds); err != nil {
			return nil, err
		}
		fmt.Printf("Benchmarking scale %d (%d records)\n", scale, recordCount(ds))

		for _, command := range config.Commands {
			cold, warm := runBenchmark(config, dataDir, command)
			result := BenchmarkResult{
				Scale:    scale,
				Records:  recordCount(ds),
				Command:  strings.Join(command, " "),
				ColdTime: formatTime(cold),
				WarmTime: formatAverage(warm),
			}
			fmt.Printf("  %-40s cold: %s, warm: %s\n", result.Command, result.ColdTime, result.WarmTime)
			results = append(results, result)
		}
	}
	return results, nil
}

// runBenchmark executes one agrilens command several times and returns the cold time and warm times.
func runBenchmark(config BenchmarkConfig, dataDir string, command []string) (coldTime float64, warmTimes []float64) {
	args := append(append([]string{}, command...), "--data-dir", dataDir, "--limit", "1000", "--color", "no")

	var times []float64
	for range config.Runs {
		start := time.Now()
		cmd := exec.Command("agrilens", args...)

		done := make(chan bool)
		var cmdErr error
		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func formatTime(seconds float64) string {
	if seconds <= 0 {
		return "TIMEOUT"
	}
	return fmt.Sprintf("%.3fs", seconds)
}

func formatAverage(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return formatTime(sum / float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("agrilens_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"scale", "records", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{strconv.Itoa(r.Scale), strconv.Itoa(r.Records), r.Command, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the warm averages grouped by command.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.Command] {
			continue
		}
		seen[r.Command] = true
		fmt.Printf("%s:\n", r.Command)
		for _, s := range results {
			if s.Command == r.Command {
				fmt.Printf("  %8d records: Cold: %s, Warm: %s\n", s.Records, s.ColdTime, s.WarmTime)
			}
		}
	}
}
