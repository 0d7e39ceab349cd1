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
	"time"

	"github.com/spf13/cobra"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/analytics"
)

// runCaptureCommand writes today's health snapshot for every account.
// Safe to run from cron; re-runs on the same day overwrite.
func runCaptureCommand(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	pg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = pg.Close() }()

	captured, err := analytics.CaptureSnapshots(ctx, pg, time.Now().UTC())
	if err != nil {
		return err
	}
	fmt.Printf("Captured %d health snapshots\n", captured)
	return nil
}
