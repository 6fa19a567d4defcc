package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// Expected totals below depend on these values.
const (
	totalBatches   = 400 // Event batches and document batches sent, each
	eventsPerBatch = 30  // 10 doc:create, 10 doc:update, 10 doc:delete split 5/3/2
	ordersPerBatch = 10  // Every 5th order is failed
)

var (
	lifecycleEvents = []string{"doc:create", "doc:create", "doc:create", "doc:create", "doc:create",
		"doc:update", "doc:update", "doc:update", "doc:delete", "doc:delete"}
	orderStatuses = []string{"paid", "paid", "shipped", "paid", "failed"}
)

// ### End - fixed configs

// main runs the e2e scenario: 001_lifecycle_and_failed_orders
//
// It runs against a server started with configs/configs.yml and
// configs/probes.jsonc on the file storage backend.
//
// What it tests:
//   - Event ingestion via POST /events feeding the document-lifecycle monitor
//   - Document ingestion via POST /documents/shop/orders feeding the
//     failed-orders watcher
//   - Monitor interval flushes and watcher immediate flushes landing in file storage
//   - No hit lost while batches are ingested concurrently
//
// Expected results:
//   - document-lifecycle records sum to doc:create=6000, doc:update=3600, doc:delete=2400
//   - failed-orders records hold 800 collected orders, all with status "failed"
func main() {
	baseURL := "http://localhost:8080" // Base URL of the probe metrics server
	parallel := 4                      // Number of concurrent requests
	storageDir := ".tmp/measures"      // storage.root_dir relative to project root
	index := "metrics"                 // storage.index
	waitFor := 90 * time.Second        // Longer than the monitor interval

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	indexPath := filepath.Join(projectRoot, storageDir, index)

	fmt.Println("Starting e2e scenario: 001_lifecycle_and_failed_orders")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("INDEX_PATH: %s\n", indexPath)
	fmt.Println()

	// Records from earlier runs would skew the totals
	baseline := map[string]int{
		"document-lifecycle": countRecordFiles(filepath.Join(indexPath, "document-lifecycle")),
		"failed-orders":      countRecordFiles(filepath.Join(indexPath, "failed-orders")),
	}
	if baseline["document-lifecycle"] > 0 || baseline["failed-orders"] > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %s is not empty, clean it and restart the server\n", indexPath)
		os.Exit(1)
	}

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var failedRequests int64
	var acceptedItems int64

	send := func(path string, body []byte) {
		defer wg.Done()
		defer func() { <-workerChan }()

		accepted, err := post(baseURL+path, body)
		if err != nil {
			atomic.AddInt64(&failedRequests, 1)
			fmt.Fprintf(os.Stderr, "ERROR: %s: %v\n", path, err)
			return
		}
		atomic.AddInt64(&acceptedItems, int64(accepted))
	}

	for batch := 0; batch < totalBatches; batch++ {
		eventsBody, _ := json.Marshal(map[string]any{"events": eventBatch()})
		wg.Add(1)
		workerChan <- struct{}{}
		go send("/events", eventsBody)

		ordersBody, _ := json.Marshal(orderBatch(batch))
		wg.Add(1)
		workerChan <- struct{}{}
		go send("/documents/shop/orders", ordersBody)
	}
	wg.Wait()

	if failed := atomic.LoadInt64(&failedRequests); failed > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d requests failed\n", failed)
		os.Exit(1)
	}
	fmt.Printf("Accepted items: %d\n", atomic.LoadInt64(&acceptedItems))
	fmt.Println()

	wantHooks := map[string]int64{"doc:create": 6000, "doc:update": 3600, "doc:delete": 2400}
	wantFailedOrders := totalBatches * ordersPerBatch / len(orderStatuses)

	deadline := time.Now().Add(waitFor)
	for {
		hooks, err := sumHooks(filepath.Join(indexPath, "document-lifecycle"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		failedOrders, err := countFailedOrders(filepath.Join(indexPath, "failed-orders"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}

		if equalHooks(hooks, wantHooks) && failedOrders == wantFailedOrders {
			fmt.Println("=== Results ===")
			fmt.Printf("document-lifecycle: %v\n", hooks)
			fmt.Printf("failed-orders: %d\n", failedOrders)
			fmt.Println("Scenario completed successfully")
			return
		}
		if time.Now().After(deadline) {
			fmt.Fprintf(os.Stderr, "ERROR: timed out, document-lifecycle=%v (want %v), failed-orders=%d (want %d)\n",
				hooks, wantHooks, failedOrders, wantFailedOrders)
			os.Exit(1)
		}
		time.Sleep(2 * time.Second)
	}
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod, run from the project root")
		}
		dir = parent
	}
}

func eventBatch() []string {
	batch := make([]string, 0, eventsPerBatch)
	for len(batch) < eventsPerBatch {
		batch = append(batch, lifecycleEvents...)
	}
	return batch
}

func orderBatch(batch int) []map[string]any {
	orders := make([]map[string]any, 0, ordersPerBatch)
	for i := 0; i < ordersPerBatch; i++ {
		n := batch*ordersPerBatch + i
		orders = append(orders, map[string]any{
			"id": fmt.Sprintf("order-%06d", n),
			"body": map[string]any{
				"status":   orderStatuses[n%len(orderStatuses)],
				"customer": map[string]any{"id": fmt.Sprintf("cus-%03d", n%100)},
				"total":    float64(n%500) + 0.99,
			},
		})
	}
	return orders
}

func post(url string, body []byte) (int, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var result struct {
		Accepted int `json:"accepted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Accepted, nil
}

// readRecords decodes every record file in dir, skipping metadata files.
func readRecords(dir string) ([]map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "_") || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var record map[string]any
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		records = append(records, record)
	}
	return records, nil
}

func countRecordFiles(dir string) int {
	records, _ := readRecords(dir)
	return len(records)
}

func sumHooks(dir string) (map[string]int64, error) {
	records, err := readRecords(dir)
	if err != nil {
		return nil, err
	}
	totals := map[string]int64{}
	for _, record := range records {
		for key, value := range record {
			if key == "timestamp" {
				continue
			}
			if number, ok := value.(float64); ok {
				totals[key] += int64(number)
			}
		}
	}
	return totals, nil
}

func countFailedOrders(dir string) (int, error) {
	records, err := readRecords(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, record := range records {
		if record["status"] != "failed" {
			return 0, fmt.Errorf("failed-orders holds an order with status %v", record["status"])
		}
		count++
	}
	return count, nil
}

func equalHooks(got, want map[string]int64) bool {
	for key, value := range want {
		if got[key] != value {
			return false
		}
	}
	return true
}
