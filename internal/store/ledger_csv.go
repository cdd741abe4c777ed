package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

var ledgerHeader = []string{"id", "firstName", "lastName", "email"}

// csvLedger appends one line per registered user to a CSV file. The header
// is written once, when the file is empty.
type csvLedger struct {
	mu     sync.Mutex
	path   string
	logger *logger.Logger
}

// NewCSVLedger returns an [AuditLedger] writing to path.
func NewCSVLedger(path string, logger *logger.Logger) AuditLedger {
	logger.Debug().Str("path", path).Msg("creating csv ledger")
	return &csvLedger{
		path:   path,
		logger: logger,
	}
}

func (l *csvLedger) Append(ctx context.Context, user models.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening ledger: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("error reading ledger info: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err = w.Write(ledgerHeader); err != nil {
			return fmt.Errorf("error writing ledger header: %w", err)
		}
	}
	if err = w.Write([]string{user.ID, user.FirstName, user.LastName, user.Email}); err != nil {
		return fmt.Errorf("error writing ledger row: %w", err)
	}
	w.Flush()

	if err = w.Error(); err != nil {
		return fmt.Errorf("error flushing ledger: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("user_id", user.ID).Msg("user appended to ledger")
	return nil
}
