package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"estatechat/internal/model"
)

// ReportWriter is the document-generator collaborator. It renders a summary
// artifact for a set of listings and returns the artifact path. Layout and
// charting stay behind this port; the core only depends on render-to-handle.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a report writer targeting the given directory.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Render writes a markdown summary of the properties and catalog statistics
// and returns the path of the written artifact.
func (w *ReportWriter) Render(properties []model.Listing, stats *model.Statistics) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Property Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	if stats != nil {
		b.WriteString("## Market Overview\n\n")
		fmt.Fprintf(&b, "- Total properties: %d\n", stats.Total)
		fmt.Fprintf(&b, "- Average price: %.0f\n", stats.AvgPrice)
		fmt.Fprintf(&b, "- Price range: %.0f - %.0f\n", stats.MinPrice, stats.MaxPrice)
		if len(stats.SampleLocations) > 0 {
			fmt.Fprintf(&b, "- Locations: %s\n", strings.Join(stats.SampleLocations, ", "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Properties (%d)\n\n", len(properties))
	for i, prop := range properties {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, displayTitle(prop))
		fmt.Fprintf(&b, "- ID: %s\n", prop.PropertyID)
		if prop.Location != nil {
			fmt.Fprintf(&b, "- Location: %s\n", *prop.Location)
		}
		if prop.Price != nil {
			fmt.Fprintf(&b, "- Price: %.0f\n", *prop.Price)
		}
		if prop.Bedrooms != nil {
			fmt.Fprintf(&b, "- Bedrooms: %d\n", *prop.Bedrooms)
		}
		if prop.Status != nil {
			fmt.Fprintf(&b, "- Status: %s\n", *prop.Status)
		}
		b.WriteString("\n")
	}

	filename := fmt.Sprintf("property_report_%s.md", time.Now().Format("20060102_150405"))
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

func displayTitle(prop model.Listing) string {
	if prop.Title != nil && *prop.Title != "" {
		return *prop.Title
	}
	if prop.Description != nil && *prop.Description != "" {
		desc := *prop.Description
		if len(desc) > 100 {
			desc = desc[:100] + "..."
		}
		return desc
	}
	return "Property"
}
