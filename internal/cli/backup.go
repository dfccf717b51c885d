package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mindpilot/commandhq/internal/backup"
	"github.com/mindpilot/commandhq/internal/storage"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
	List    BackupListCmd    `cmd:"" help:"List available backups, newest first."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the store from a backup file."`
}

func backupManager(ctx *Context) (*backup.Manager, error) {
	path := ctx.Store.GetConfigPath()
	if storage.IsPostgresConnString(path) {
		return nil, fmt.Errorf("backups are managed by the database server for postgres stores")
	}
	return backup.NewManager(path), nil
}

type BackupCreateCmd struct{}

func (cmd *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (cmd *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %8d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, filepath.Base(b.Path))
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup file name or path. Bare names resolve against the backup directory."`
}

func (cmd *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path := cmd.Backup
	if !strings.ContainsRune(path, filepath.Separator) {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	if err := ctx.Store.Close(); err != nil {
		return err
	}
	if err := mgr.RestoreBackup(path); err != nil {
		return err
	}
	fmt.Printf("Store restored from %s. The previous state was backed up first.\n", filepath.Base(path))
	return nil
}
