package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lanrat/tapesort/tape"
)

// parseDelays reads the delay configuration file: one whitespace-separated
// "key value" directive per non-empty line, values in nanoseconds. Unknown
// keys print a warning and are ignored; a malformed value is fatal. A
// missing file means no latency emulation.
func parseDelays(path string) (tape.Delays, error) {
	var delays tape.Delays

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return delays, nil
		}
		return delays, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return delays, fmt.Errorf("reading config file: %w", err)
	}
	if info.IsDir() {
		return delays, fmt.Errorf("config file cannot be a directory")
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return delays, fmt.Errorf("incorrect config file: %s", line)
		}
		value, err := strconv.ParseUint(fields[1], 10, 63)
		if err != nil {
			return delays, fmt.Errorf("incorrect config file: %s", line)
		}
		delay := time.Duration(value)
		switch fields[0] {
		case "read-delay":
			delays.Read = delay
		case "write-delay":
			delays.Write = delay
		case "rewind-step-delay":
			delays.RewindStep = delay
		case "rewind-delay":
			delays.Rewind = delay
		case "next-delay":
			delays.Next = delay
		default:
			fmt.Fprintf(os.Stderr, "unknown key %s\n", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return delays, fmt.Errorf("reading config file: %w", err)
	}
	return delays, nil
}
