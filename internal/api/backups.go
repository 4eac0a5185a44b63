package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/storage"
	"github.com/dmitrymomot/templatewing/pkg/transfer"
)

// Backups creates, lists and restores template backups.
type Backups interface {
	Backup(ctx context.Context) (*storage.ObjectInfo, error)
	Backups(ctx context.Context) ([]storage.ObjectInfo, error)
	Restore(ctx context.Context, key string) (*transfer.Report, error)
}

type backupInfo struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

func toBackupInfo(o storage.ObjectInfo) backupInfo {
	return backupInfo{Key: o.Key, Size: o.Size, CreatedAt: o.LastModified}
}

type restoreRequest struct {
	// Key selects the backup; empty restores the newest one.
	Key string `json:"key"`
}

func (s *Server) requireBackups() error {
	if s.backups == nil {
		return newHTTPError(http.StatusServiceUnavailable, "backups_disabled", "Backups are not configured", nil)
	}
	return nil
}

func (s *Server) listBackups(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireBackups(); err != nil {
		return err
	}
	objs, err := s.backups.Backups(r.Context())
	if err != nil {
		return err
	}
	out := make([]backupInfo, 0, len(objs))
	for _, o := range objs {
		out = append(out, toBackupInfo(o))
	}
	writeJSON(w, http.StatusOK, out)
	return nil
}

func (s *Server) createBackup(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireBackups(); err != nil {
		return err
	}
	info, err := s.backups.Backup(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, toBackupInfo(*info))
	return nil
}

// restoreBackup imports a backup on top of the current templates. Existing
// templates are kept; restored ones get new ids.
func (s *Server) restoreBackup(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireBackups(); err != nil {
		return err
	}
	var req restoreRequest
	if r.ContentLength != 0 {
		if err := s.decodeJSON(w, r, &req); err != nil {
			return err
		}
	}
	report, err := s.backups.Restore(r.Context(), req.Key)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, report)
	return nil
}
