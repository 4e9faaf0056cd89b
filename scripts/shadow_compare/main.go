package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
)

type target struct {
	Name     string          `json:"name"`
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	Payload  json.RawMessage `json:"payload"`
	Critical bool            `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target           target
	LegacyStatus     int
	GoStatus         int
	StatusMatch      bool
	BodyMatch        bool
	GoViolations     []models.TimetableViolation
	LegacyViolations []models.TimetableViolation
	Error            error
	DurationGo       time.Duration
	DurationLegacy   time.Duration
}

func (c comparison) ok() bool {
	return c.Error == nil && c.StatusMatch && c.BodyMatch && len(c.GoViolations) == 0
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:5001", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5002", "Legacy generator base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range targets {
		comp := compareTarget(client, goBase, legacyBase, t)
		if !comp.ok() {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func compareTarget(client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}
	goResp, goDur, goErr := performRequest(client, goBase, tgt)
	legacyResp, legacyDur, legacyErr := performRequest(client, legacyBase, tgt)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur

	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	defer goResp.Body.Close()
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}
	defer legacyResp.Body.Close()

	comp.GoStatus = goResp.StatusCode
	comp.LegacyStatus = legacyResp.StatusCode
	comp.StatusMatch = comp.GoStatus == comp.LegacyStatus

	goBody, err := io.ReadAll(goResp.Body)
	if err != nil {
		comp.Error = fmt.Errorf("read go body: %w", err)
		return comp
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		comp.Error = fmt.Errorf("read legacy body: %w", err)
		return comp
	}

	// Successful timetables are random, so they are compared on validity
	// rather than content. Failure bodies must match exactly.
	if comp.GoStatus != http.StatusOK || comp.LegacyStatus != http.StatusOK {
		comp.BodyMatch = bodiesEqual(goBody, legacyBody)
		return comp
	}

	subjects, err := demandsFromPayload(tgt.Payload)
	if err != nil {
		comp.Error = fmt.Errorf("decode payload: %w", err)
		return comp
	}
	if comp.GoViolations, err = checkBody(subjects, goBody); err != nil {
		comp.Error = fmt.Errorf("decode go body: %w", err)
		return comp
	}
	if comp.LegacyViolations, err = checkBody(subjects, legacyBody); err != nil {
		comp.Error = fmt.Errorf("decode legacy body: %w", err)
		return comp
	}
	comp.BodyMatch = true
	return comp
}

func performRequest(client *http.Client, base string, tgt target) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodPost
	}
	path := tgt.Path
	if path == "" {
		path = "/generate"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	var body io.Reader
	if len(tgt.Payload) > 0 {
		body = bytes.NewReader(tgt.Payload)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

// demandsFromPayload mirrors the server's defaulting of lecturesPerWeek.
func demandsFromPayload(payload json.RawMessage) ([]models.SubjectDemand, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var req dto.GenerateTimetableRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, err
	}
	subjects := make([]models.SubjectDemand, 0, len(req.Subjects))
	for _, item := range req.Subjects {
		lectures := 1
		if item.LecturesPerWeek != nil {
			lectures = *item.LecturesPerWeek
		}
		subjects = append(subjects, models.SubjectDemand{SubjectName: item.Subject, FacultyName: item.Faculty, LecturesPerWeek: lectures})
	}
	return subjects, nil
}

func checkBody(subjects []models.SubjectDemand, body []byte) ([]models.TimetableViolation, error) {
	var lectures []models.ScheduledLecture
	if err := json.Unmarshal(body, &lectures); err != nil {
		return nil, err
	}
	return service.CheckTimetable(subjects, lectures), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(aj, bj)
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.ok() {
			status = "DIFF"
		}
		name := res.Target.Name
		if name == "" {
			name = res.Target.Path
		}
		fmt.Printf("[%s] %s\n", status, name)
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		for _, v := range res.GoViolations {
			fmt.Printf("  Go violation: %s %+v\n", v.Dimension, v)
		}
		for _, v := range res.LegacyViolations {
			fmt.Printf("  Legacy violation: %s %+v\n", v.Dimension, v)
		}
	}
}
