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

// runKPIsCommand prints the portfolio KPI summary as a table.
func runKPIsCommand(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	pg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = pg.Close() }()

	now := time.Now().UTC()
	accounts, err := pg.ListAccounts(ctx)
	if err != nil {
		return err
	}
	events, err := pg.ListEventsSince(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		return err
	}
	activities, err := pg.ListActivities(ctx)
	if err != nil {
		return err
	}

	kpis := analytics.ComputeKPIs(accounts, events, activities, now)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"KPI", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Total ARR at risk", analytics.FormatACV(kpis.TotalARRAtRisk)},
		{"Total ARR (top 50)", analytics.FormatACV(kpis.TotalARRTop50)},
		{"Accounts at risk", strconv.Itoa(kpis.AccountsAtRisk)},
		{"Accounts at risk (top 50)", strconv.Itoa(kpis.AccountsTop50AtRisk)},
		{"WoW change", fmt.Sprintf("%d (%.1f%%)", kpis.WoWChangeCount, kpis.WoWChangePct)},
		{"Through win room (30d)", strconv.Itoa(kpis.AccountsThroughWinRoom)},
		{"Outstanding follow-ups", strconv.Itoa(kpis.OutstandingFollowups)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
