// seed_history.go — standalone script to parse a student roster CSV and seed
// prediction history via the Compass API.
//
// Usage:
//
//	go run scripts/seed_history.go -roster /path/to/roster.csv -api http://localhost:8700 -client seed
//
// The CSV needs a header row; a student_ref column is optional, every other
// column is treated as a metric name. Empty cells are left out of the
// request, so incomplete rows surface as 400s from the API.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type predictionRequest struct {
	StudentRef string             `json:"student_ref,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

func main() {
	rosterPath := flag.String("roster", "roster.csv", "path to roster CSV file")
	apiURL := flag.String("api", "http://localhost:8700", "Compass API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print profiles without posting")
	flag.Parse()

	f, err := os.Open(*rosterPath)
	if err != nil {
		log.Fatalf("open roster: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatalf("parse roster: %v", err)
	}
	if len(records) < 2 {
		log.Fatalf("roster has a header but no data rows")
	}

	header := records[0]
	var profiles []predictionRequest
	for i, row := range records[1:] {
		profile := predictionRequest{Metrics: make(map[string]float64)}
		for col, cell := range row {
			if col >= len(header) {
				break
			}
			name := strings.TrimSpace(header[col])
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if name == "student_ref" {
				profile.StudentRef = cell
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				log.Printf("row %d: bad value %q for %s, dropping cell", i+2, cell, name)
				continue
			}
			profile.Metrics[name] = v
		}
		if len(profile.Metrics) == 0 {
			log.Printf("row %d: no metrics, skipping", i+2)
			continue
		}
		profiles = append(profiles, profile)
	}

	log.Printf("parsed %d profiles from %s", len(profiles), *rosterPath)

	if *dryRun {
		for i, p := range profiles {
			fmt.Printf("[%d] %s (%d metrics)\n", i+1, p.StudentRef, len(p.Metrics))
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, p := range profiles {
		body, _ := json.Marshal(p)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/predictions", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", p.StudentRef, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", p.StudentRef, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d", p.StudentRef, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
