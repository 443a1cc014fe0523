package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/dataset"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/sampling"
	"github.com/stratalabs/evalsample/pkg/ux"
)

// runInspect downloads and decodes the dataset, then compares its actual
// category distribution against the plan's reference table. Useful when a
// dataset mirror has been updated and the plan may be stale.
func runInspect(cmd *cobra.Command, _ []string) error {
	p, err := loadPlan(cmd)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spinner := NewSpinner(SpinnerConfig{Message: "Downloading dataset..."})
	spinner.Start()

	rows, err := dataset.Fetch(ctx, dataset.FetchConfig{
		URL:              p.DatasetURL,
		MaxAttempts:      maxAttempts,
		FallbackCategory: p.FallbackCategory,
	}, logger)
	if err != nil {
		spinner.StopFailure("Download failed")
		ux.Error(err.Error())
		return err
	}
	spinner.SetMessage("Decoding records...")

	pool, stats := dataset.DecodePool(rows, logger, func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Decoding records... %d/%d", done, total))
	})
	spinner.StopSuccess(fmt.Sprintf("Decoded %d of %d rows", stats.Processed, len(rows)))

	actual := sampling.Distribution(pool)
	reference := p.ReferenceHistogram()

	ux.Title("Dataset Distribution")
	ux.KeyValue("Dataset", p.DatasetURL)
	ux.KeyValue("Rows", fmt.Sprintf("%d", len(rows)))
	ux.KeyValue("Decoded", fmt.Sprintf("%d", stats.Processed))
	if stats.Skipped > 0 {
		ux.KeyValue("Skipped", fmt.Sprintf("%d", stats.Skipped))
	}
	fmt.Println()

	header := ux.TableRow{Label: "Category", Cells: []string{"Actual", "Reference"}}
	tableRows := make([]ux.TableRow, 0, actual.Len())
	mismatch := false
	for _, category := range actual.Categories() {
		ref := "-"
		if reference.Has(category) {
			ref = fmt.Sprintf("%d", reference.Get(category))
		}
		if actual.Get(category) != reference.Get(category) {
			mismatch = true
		}
		tableRows = append(tableRows, ux.TableRow{
			Label: category,
			Cells: []string{fmt.Sprintf("%d", actual.Get(category)), ref},
		})
	}
	for _, category := range reference.Categories() {
		if !actual.Has(category) {
			mismatch = true
			tableRows = append(tableRows, ux.TableRow{
				Label: category,
				Cells: []string{"0", fmt.Sprintf("%d", reference.Get(category))},
			})
		}
	}
	ux.Table(header, tableRows)
	fmt.Println()

	if mismatch {
		ux.Warning("dataset distribution differs from the plan's reference table")
		ux.Muted("update the plan's reference counts to keep quotas proportional")
	} else {
		ux.Success("dataset matches the plan's reference distribution")
	}
	return nil
}
