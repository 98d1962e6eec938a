package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/stats"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --input   : Path to input CSV file, class in the last column
// --header  : Whether the first row holds attribute names. Default = true
// --mode    : Output mode: "cli" (preview in console) or "csv" (save processed file)
// --output  : Path to save processed CSV (if mode=csv). Default = ./standardized_<input>
// --preview : Number of rows to preview in console
// --legacy  : Use v - mean/std instead of the z-score
// --center  : Map constant columns to 0 instead of failing
//
// Example:
//   go run main.go --input diabetes.csv --mode csv --center
//
// ---------------------------------------------------------------------
//

// previewData prints the first N rows with headers
func previewData(ds *data.Dataset, n int) {
	if n > ds.Len() {
		n = ds.Len()
	}
	for _, a := range ds.Attributes {
		fmt.Printf("%-15s", a.Name)
	}
	fmt.Printf("%-15s\n", "Label")
	for i := 0; i < n; i++ {
		for _, val := range ds.Instances[i].Features {
			fmt.Printf("%-15.6f", val)
		}
		fmt.Printf("%-15d\n", ds.Instances[i].Label)
	}
}

func main() {
	// ---- CLI Flags ----
	inputPath := flag.String("input", "", "Path to input CSV file")
	header := flag.Bool("header", true, "First row holds attribute names")
	mode := flag.String("mode", "cli", "Output mode: cli or csv")
	outputPath := flag.String("output", "", "Path to save processed CSV (if mode=csv)")
	previewRows := flag.Int("preview", 5, "Number of rows to preview in console")
	legacy := flag.Bool("legacy", false, "Use v - mean/std instead of the z-score")
	center := flag.Bool("center", false, "Map constant columns to 0 instead of failing")
	flag.Parse()

	// ---- Load ----
	ds, err := data.LoadCSV(*inputPath, *header)
	if err != nil {
		log.Fatalf("Error loading CSV file: %v", err)
	}
	if err := ds.Validate(); err != nil {
		log.Fatalf("Dataset cannot be standardized: %v", err)
	}
	counts := ds.ClassCounts()
	fmt.Printf("Loaded %d rows, %d features, class balance 0:%d 1:%d\n", ds.Len(), ds.NumFeatures(), counts[0], counts[1])

	// ---- Scaling ----
	scaleMode, policy := stats.ZScore, stats.FailOnDegenerate
	if *legacy {
		scaleMode = stats.Legacy
	}
	if *center {
		policy = stats.CenterDegenerate
	}
	scaler := stats.NewStandardizer(scaleMode, policy)
	out, err := scaler.FitDataset(ds)
	if err != nil {
		log.Fatalf("Error standardizing: %v", err)
	}
	for j, a := range ds.Attributes {
		fmt.Printf("  %-15s mean=%-12.4f std=%.4f\n", a.Name, scaler.Mean[j], scaler.Std[j])
	}

	// ---- Output ----
	if *mode != "csv" {
		fmt.Println("\nPreview of standardized data:")
		previewData(out, *previewRows)
		return
	}

	if *outputPath == "" {
		*outputPath = filepath.Join(".", "standardized_"+filepath.Base(*inputPath))
	}
	file, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Error creating output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := make([]string, 0, out.NumFeatures()+1)
	for _, a := range out.Attributes {
		headers = append(headers, a.Name)
	}
	if err := writer.Write(append(headers, "class")); err != nil {
		log.Fatalf("Error writing headers: %v", err)
	}
	for _, inst := range out.Instances {
		row := make([]string, 0, len(inst.Features)+1)
		for _, val := range inst.Features {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := writer.Write(append(row, strconv.Itoa(inst.Label))); err != nil {
			log.Fatalf("Error writing row: %v", err)
		}
	}
	fmt.Println("Standardized data saved to:", *outputPath)
}
