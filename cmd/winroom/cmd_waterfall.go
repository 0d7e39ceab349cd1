// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/analytics"
)

// runWaterfallCommand prints the six-row risk waterfall as a table.
func runWaterfallCommand(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	pg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = pg.Close() }()

	mode := analytics.ParseMode(periodMode)
	period := analytics.Resolve(mode, time.Now().UTC())

	accounts, err := pg.ListAccounts(ctx)
	if err != nil {
		return err
	}
	snapshots, err := pg.ListSnapshotsBetween(ctx, period.WindowStart, period.Today)
	if err != nil {
		return err
	}

	rows := analytics.BuildWaterfall(accounts, snapshots, period)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Category", "Logos", "ACV"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Category,
			strconv.Itoa(r.LogoCount),
			r.DisplayValue,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Period: %s (%s through %s)\n", mode,
		period.WindowStart.Format("2006-01-02"), period.Today.Format("2006-01-02"))
	return nil
}
