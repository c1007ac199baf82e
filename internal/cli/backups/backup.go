package backups

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n", filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup filename to restore from."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	// Close the live database before swapping files underneath it.
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	path := c.Name
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	if err := mgr.RestoreBackup(path); err != nil {
		return err
	}
	fmt.Printf("Restored database from %s\n", filepath.Base(path))
	return nil
}
