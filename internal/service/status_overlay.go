package service

import (
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/util"
)

// EffectiveStatus overlays a monthly override on the template's baseline status.
//
// An override wins outright. Without one, a virtual occurrence in a month after now
// is pending and not cleared, so projections never inherit a settled baseline.
// The literal month and past months use the baseline.
func EffectiveStatus(t *domain.TransactionTemplate, override *domain.MonthlyStatusOverride, virtual bool, year, month int, now time.Time) (domain.TransactionStatus, bool) {
	if override != nil {
		return override.Status, override.IsCleared
	}
	if virtual && util.IsFutureMonth(year, month, now) {
		return domain.StatusPending, false
	}
	return t.Status, t.IsCleared
}
