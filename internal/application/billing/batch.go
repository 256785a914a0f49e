package billing

import (
	"regexp"
	"strconv"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
)

// packPattern matches strip-style pack descriptions: an integer followed by
// tab/tablet/cap/capsule, optionally pluralised. Bottles, tubes and other
// free-text packs do not match and count as single-unit packs.
var packPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:tab|tablet|cap|capsule)s?\b`)

// SelectFIFOBatch picks the batch a sale should draw from: among batches with
// stock, the one expiring soonest. Returns nil when nothing is available, and
// the caller must surface an out-of-stock error rather than silently adding
// nothing to the cart.
func SelectFIFOBatch(batches []entity.Batch) *entity.Batch {
	var pick *entity.Batch
	for i := range batches {
		b := &batches[i]
		if b.Stock <= 0 {
			continue
		}
		if pick == nil || b.ExpiryDate.Before(pick.ExpiryDate) {
			pick = b
		}
	}
	return pick
}

// UnitsPerPack parses a free-text pack description ("10 tabs", "1 cap") into
// the unit count of one strip. Unrecognised descriptions default to 1.
func UnitsPerPack(pack string) int {
	m := packPattern.FindStringSubmatch(pack)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ClampQuantity validates a requested cart quantity against a batch's
// remaining stock. Negative quantities are rejected; a request above the
// available stock is clamped and reported (clamped=true) so the UI can show
// a "cannot exceed available stock" message without aborting the edit.
func ClampQuantity(requested, available int) (qty int, clamped bool, err error) {
	if requested < 0 {
		return 0, false, apperror.NewValidationError("quantity cannot be negative")
	}
	if requested > available {
		return available, true, nil
	}
	return requested, false, nil
}
