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

	"github.com/spf13/cobra"
)

// runMigrateCommand applies schema migrations to the configured
// database, up to the latest version by default.
func runMigrateCommand(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	pg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = pg.Close() }()

	if err := pg.Migrate(migrateVersion); err != nil {
		return err
	}
	if migrateVersion < 0 {
		fmt.Println("Migrated to the latest schema version")
	} else {
		fmt.Printf("Migrated to schema version %d\n", migrateVersion)
	}
	return nil
}
